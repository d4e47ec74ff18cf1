package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akyairhashvil/timeplan/internal/config"
	"golang.org/x/term"
)

// TermPassphrase prefers the backup key environment variable and otherwise
// prompts on the terminal without echo.
func TermPassphrase(stdin *os.File, prompts io.Writer) PassphraseFunc {
	return func(prompt string) (string, error) {
		if key := strings.TrimSpace(os.Getenv(config.BackupKeyEnv)); key != "" {
			return key, nil
		}
		fd := int(stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errors.New("no terminal to read a passphrase from; set " + config.BackupKeyEnv)
		}
		fmt.Fprint(prompts, prompt)
		pass, err := term.ReadPassword(fd)
		fmt.Fprintln(prompts)
		return strings.TrimSpace(string(pass)), err
	}
}
