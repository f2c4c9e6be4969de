package ports

type FileSystemPort interface {
	Exists(filePath string) (bool, error)
	Expand(targets []string, excludeDirs []string) ([]string, error)
}
