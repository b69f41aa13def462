// Package fs abstracts the file system operations used to write column
// files, so tests can inject failures.
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: wrapper injecting write, sync, close and rename errors
//
// Production code uses fs.Default:
//
//	file, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
//
// Tests inject a FaultyFS:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: 1024})
package fs
