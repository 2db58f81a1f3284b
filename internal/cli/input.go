package cli

import (
	"io"
	"os"
	"strings"

	"github.com/TheJP/factorio-blueprint/pkg/errors"
)

// readBlueprint resolves a blueprint argument: "-" reads stdin, "@path"
// reads a file, anything else is the blueprint string itself. Surrounding
// whitespace is trimmed.
func readBlueprint(arg string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	switch {
	case arg == "-":
		data, err = io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		data, err = os.ReadFile(arg[1:])
	default:
		return strings.TrimSpace(arg), nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read blueprint")
	}
	return strings.TrimSpace(string(data)), nil
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(path string, w io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
