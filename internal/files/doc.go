// Package files groups template discovery into sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: finds *.sql templates and attaches identity and checksum
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/whdeploy/internal/checksum"
//	    "github.com/vvka-141/whdeploy/internal/files/scanner"
//	)
//
//	templateScanner := scanner.NewScanner(checksum.New())
//	templates, err := templateScanner.ScanTemplates("definitions")
package files
