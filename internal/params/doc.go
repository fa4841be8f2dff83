// Package params collects the template variable overrides given on the
// command line.
//
// Overrides come from two sources and are layered on top of the
// environment's manifest configuration:
//
//   - --params-file: .env formatted files (parsed with godotenv), applied in
//     the order given, later files win
//   - --param key=value: individual pairs, which win over every file
//
// Override values are always strings. Keys that already exist in the
// manifest keep their position in the configuration listing; new keys are
// appended.
//
// # Example Usage
//
//	overrides, err := params.Load([]string{"ci.env"}, []string{"schema=tmp"})
//	if err != nil {
//	    return err
//	}
//	cfg.Overrides = overrides
package params
