// xigiledctl manages the encrypted secrets store used by the chatbot
// backend: API keys for the knowledge fallback providers and the admin
// password for the web UI.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/xigi2024/Xigiled-chatbot-backend/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "secrets-init":
		err = runSecretsInit(os.Args[2:])
	case "secrets-set":
		err = runSecretsSet(os.Args[2:])
	case "secrets-list":
		err = runSecretsList(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "chat":
		err = runChat(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`xigiledctl - manage the Xigiled chatbot secrets store

Usage:
  xigiledctl secrets-init [-dir DIR]              Create an encrypted secrets file interactively
  xigiledctl secrets-set [-dir DIR] NAME [VALUE]  Set one secret (prompts for VALUE if omitted)
  xigiledctl secrets-list [-dir DIR]              List stored secret names
  xigiledctl export [-db PATH] [-range NAME]      Export chat messages as JSON (today|week|month|year)
  xigiledctl chat                                 Interactive local chat for smoke-testing the flow

Known secret names:
  OPENAI_API_KEY, ANTHROPIC_API_KEY, GEMINI_API_KEY, XIGILED_ADMIN_PASSWORD

The master password is read from XIGILED_MASTER_PASSWORD when set,
otherwise from a terminal prompt.`)
}

func dirFlag(name string, args []string) (dir string, rest []string, err error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&dir, "dir", ".", "Project directory holding the secrets store")
	if err = fs.Parse(args); err != nil {
		return "", nil, err
	}
	return dir, fs.Args(), nil
}

// runSecretsInit collects the provider keys and admin password and writes a
// fresh encrypted store. Empty answers skip a secret.
func runSecretsInit(args []string) error {
	dir, _, err := dirFlag("secrets-init", args)
	if err != nil {
		return err
	}
	if config.SecretsFileExists(dir) {
		return fmt.Errorf("secrets file already exists in %s, use secrets-set to change values", dir)
	}

	secrets := make(map[string]string)
	for _, name := range []string{
		config.SecretOpenAIKey,
		config.SecretAnthropicKey,
		config.SecretGoogleKey,
		config.SecretAdminPassword,
	} {
		value, err := promptSecret(fmt.Sprintf("%s (leave empty to skip): ", name))
		if err != nil {
			return err
		}
		if value != "" {
			secrets[name] = value
		}
	}
	if len(secrets) == 0 {
		return fmt.Errorf("no secrets entered, nothing to save")
	}

	password, err := newMasterPassword()
	if err != nil {
		return err
	}
	if err := config.EncryptSecretsFile(dir, password, secrets); err != nil {
		return fmt.Errorf("failed to encrypt secrets: %w", err)
	}
	fmt.Printf("Saved %d secrets (file permissions 0600).\n", len(secrets))
	return nil
}

func runSecretsSet(args []string) error {
	dir, rest, err := dirFlag("secrets-set", args)
	if err != nil {
		return err
	}
	if len(rest) < 1 {
		return fmt.Errorf("usage: xigiledctl secrets-set [-dir DIR] NAME [VALUE]")
	}
	name := strings.ToUpper(rest[0])

	var value string
	if len(rest) >= 2 {
		value = rest[1]
	} else {
		value, err = promptSecret(fmt.Sprintf("Value for %s: ", name))
		if err != nil {
			return err
		}
	}
	if value == "" {
		return fmt.Errorf("empty value for %s", name)
	}

	secrets := make(map[string]string)
	password, err := masterPassword()
	if err != nil {
		return err
	}
	if config.SecretsFileExists(dir) {
		secrets, err = config.DecryptSecretsFile(dir, password)
		if err != nil {
			return fmt.Errorf("failed to decrypt existing secrets: %w", err)
		}
	}
	secrets[name] = value

	if err := config.EncryptSecretsFile(dir, password, secrets); err != nil {
		return fmt.Errorf("failed to encrypt secrets: %w", err)
	}
	fmt.Printf("Saved %s.\n", name)
	return nil
}

func runSecretsList(args []string) error {
	dir, _, err := dirFlag("secrets-list", args)
	if err != nil {
		return err
	}
	if !config.SecretsFileExists(dir) {
		return fmt.Errorf("no secrets file in %s", dir)
	}

	password, err := masterPassword()
	if err != nil {
		return err
	}
	secrets, err := config.DecryptSecretsFile(dir, password)
	if err != nil {
		return fmt.Errorf("failed to decrypt secrets: %w", err)
	}

	names := make([]string, 0, len(secrets))
	for name := range secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// masterPassword reads the existing master password from the environment or
// a single prompt.
func masterPassword() (string, error) {
	if password := os.Getenv("XIGILED_MASTER_PASSWORD"); password != "" {
		return password, nil
	}
	return promptSecret("Master password: ")
}

// newMasterPassword prompts twice and requires the answers to match.
func newMasterPassword() (string, error) {
	if password := os.Getenv("XIGILED_MASTER_PASSWORD"); password != "" {
		return password, nil
	}

	const maxAttempts = 3
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Print("Choose a master password: ")
		first, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Print("Confirm master password: ")
		second, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		if bytes.Equal(first, second) {
			if len(first) == 0 {
				return "", fmt.Errorf("master password must not be empty")
			}
			return string(first), nil
		}
		if attempt < maxAttempts {
			fmt.Println("Passwords do not match, try again.")
		}
	}
	return "", fmt.Errorf("passwords did not match after %d attempts", maxAttempts)
}

func promptSecret(prompt string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("stdin is not a terminal, pass the value as an argument or set XIGILED_MASTER_PASSWORD")
	}
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
