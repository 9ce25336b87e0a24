//go:build !linux

package naming

func renameNoReplace(src, dst string) error {
	return linkRename(src, dst)
}
