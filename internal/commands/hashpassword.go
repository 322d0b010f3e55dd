package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/yearcal/internal/app"
)

var errInterrupted = errors.New("interrupted")

func newHashPasswordCommand() *cobra.Command {
	var overwrite, insecureUnmask bool

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Create the auth file for serve --auth",
		Long: "Creates an auth.secret file with an Argon2id hashed password.\n\n" +
			"Environment Variables:\n" +
			"  AUTH_FILE    Path to auth file (default: auth.secret next to the binary)",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.AuthFilePath()
			if err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			fmt.Fprint(out, "Enter username: ")
			username, err := readLine(in)
			if err != nil {
				return fmt.Errorf("reading username: %w", err)
			}
			if username == "" {
				return errors.New("username cannot be empty")
			}

			var password, passwordConfirm string
			if insecureUnmask || !isTerminalReader(cmd.InOrStdin()) {
				if insecureUnmask {
					fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: Password will be visible on screen!")
				}
				fmt.Fprint(out, "Enter password:   ")
				if password, err = readLine(in); err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
				fmt.Fprint(out, "Confirm password: ")
				if passwordConfirm, err = readLine(in); err != nil {
					return fmt.Errorf("reading password confirmation: %w", err)
				}
			} else {
				stdin := cmd.InOrStdin().(*os.File)
				if password, err = readPasswordWithMask(stdin, out, "Enter password:   "); err != nil {
					return err
				}
				if passwordConfirm, err = readPasswordWithMask(stdin, out, "Confirm password: "); err != nil {
					return err
				}
			}

			if password == "" {
				return errors.New("password cannot be empty")
			}
			if password != passwordConfirm {
				return errors.New("passwords do not match")
			}
			return app.CreateAuthFile(path, username, password, overwrite, in, out)
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing auth file without asking")
	cmd.Flags().BoolVar(&insecureUnmask, "insecure-unmask-password", false, "show password as plain text (INSECURE!)")
	return cmd
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readPasswordWithMask reads a password in raw mode and echoes asterisks.
func readPasswordWithMask(f *os.File, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	fd := int(f.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// no raw mode, fall back to hidden input
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(password), err
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	var password []rune
	reader := bufio.NewReader(f)
	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			break
		}

		switch char {
		case '\n', '\r':
			fmt.Fprint(out, "\r\n")
			return string(password), nil
		case 127, 8: // backspace or delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(out, "\b \b")
			}
		case 3: // Ctrl+C
			fmt.Fprint(out, "\r\n")
			return "", errInterrupted
		default:
			if char >= 32 && char != 127 {
				password = append(password, char)
				fmt.Fprint(out, "*")
			}
		}
	}

	fmt.Fprint(out, "\r\n")
	return string(password), nil
}
