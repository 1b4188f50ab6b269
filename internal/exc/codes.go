package exc

const (
	CodeUnknownFatal                  = "P0000"
	CodeFileNotFound                  = "P0001"
	CodeUnsuportedFileSystemOperation = "P0002"
	CodePermissionDenied              = "P0003"
	CodeUnsupportedFileFormat         = "P0004"
	CodeSyntax                        = "P0005"
	CodeTrailingInput                 = "P0006"
	CodeInvalidGrammar                = "P0007"
	CodeUndefinedRule                 = "P0008"
	CodeDuplicateRule                 = "P0009"
	CodeMissingStart                  = "P0010"
	CodeUnusedRule                    = "P0011"
)

var (
	defaultNonFatal = map[string]bool{
		CodeUnusedRule: true,
	}
)
