// Package checksum hashes template content so a run's log identifies exactly
// which revision of each template was rendered.
//
//	sum := checksum.New().Calculate(content)
//	logger.Verbose("checksum %s", checksum.Short(sum))
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
