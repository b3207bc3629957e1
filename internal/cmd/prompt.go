package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// promptPassword takes the password from --password when given, otherwise
// reads a line from the command's input stream.
func promptPassword(cmd *cobra.Command) (string, error) {
	if flag := cmd.Flags().Lookup("password"); flag != nil && flag.Changed {
		return flag.Value.String(), nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "[promptPassword]")
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("[promptPassword] password is required")
	}
	return password, nil
}
