package upload

import "regexp"

// Upload object names are used verbatim as storage keys, so they are limited
// to a conservative character set. The extension check is deliberately
// case-sensitive: the processing pipeline only accepts lowercase ".mp4".
var allowedFilename = regexp.MustCompile(`^[A-Za-z0-9._ -]+\.mp4$`)

// IsValidFilename reports whether name is acceptable as an upload object
// name. Path separators, alternate extensions and uppercase ".MP4" are all
// rejected.
func IsValidFilename(name string) bool {
	return allowedFilename.MatchString(name)
}
