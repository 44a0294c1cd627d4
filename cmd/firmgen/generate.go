package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"firmgen-server/internal/firmware/domain"

	"github.com/spf13/cobra"
)

var ErrSelectionRejected = errors.New("selection rejected")

var generateCmd = &cobra.Command{
	Use:   "generate <selection.yaml|selection.toml>",
	Short: "Write a PlatformIO project for a selection file",
	Long: `Validate the selection and, when it is accepted, write src/main.cpp and
platformio.ini into the output directory. Rejected selections print every
diagnostic and write nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var validateCmd = &cobra.Command{
	Use:   "validate <selection.yaml|selection.toml>",
	Short: "Check a selection file without generating code",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "firmware", "output directory")
	generateCmd.Flags().Bool("explain", false, "print how each sensor is wired")
	generateCmd.Flags().Bool("force", false, "overwrite existing files")
	generateCmd.Flags().String("board", "", "override the board of the selection file")
	validateCmd.Flags().Bool("explain", false, "print how each sensor is wired")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	explain, _ := cmd.Flags().GetBool("explain")
	force, _ := cmd.Flags().GetBool("force")
	board, _ := cmd.Flags().GetString("board")

	request, err := loadSelection(args[0])
	if err != nil {
		return err
	}
	if board != "" {
		request.BoardID = board
	}

	tools, err := newToolchain()
	if err != nil {
		return err
	}

	result, outcome, err := tools.build(request)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !outcome.IsAccepted() {
		printDiagnostics(cmd.ErrOrStderr(), outcome.Diagnostics())
		return ErrSelectionRejected
	}

	if explain {
		printWiring(out, result.Config)
	}

	written, err := writeProject(output, result, force)
	if err != nil {
		return err
	}

	successColor.Fprintf(out, "generated %s for %s\n", shortFingerprint(result.Fingerprint), result.Config.Board.ID)
	for _, path := range written {
		dimColor.Fprintf(out, "  %s\n", path)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	explain, _ := cmd.Flags().GetBool("explain")

	request, err := loadSelection(args[0])
	if err != nil {
		return err
	}

	tools, err := newToolchain()
	if err != nil {
		return err
	}

	result, outcome, err := tools.build(request)
	if err != nil {
		return err
	}
	if !outcome.IsAccepted() {
		printDiagnostics(cmd.ErrOrStderr(), outcome.Diagnostics())
		return ErrSelectionRejected
	}

	if explain {
		printWiring(cmd.OutOrStdout(), result.Config)
	}
	successColor.Fprintf(cmd.OutOrStdout(), "selection accepted (%s)\n", shortFingerprint(result.Fingerprint))
	return nil
}

// writeProject lays the artifact out as a PlatformIO project and returns the
// written paths. Existing files are kept unless force is set.
func writeProject(dir string, result project, force bool) ([]string, error) {
	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(dir, "src", "main.cpp"), result.Source},
		{filepath.Join(dir, "platformio.ini"), result.Manifest},
	}

	if !force {
		for _, f := range files {
			if _, err := os.Stat(f.path); err == nil {
				return nil, fmt.Errorf("%s already exists, use --force to overwrite", f.path)
			}
		}
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", filepath.Dir(f.path), err)
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		written = append(written, f.path)
	}
	return written, nil
}

func printDiagnostics(w io.Writer, diagnostics []domain.Diagnostic) {
	errorColor.Fprintf(w, "selection rejected with %d problem(s):\n", len(diagnostics))
	for _, d := range diagnostics {
		fmt.Fprintf(w, "  %s %s\n", dimColor.Sprintf("[%s]", d.Kind), d.Message)
	}
}

func printWiring(w io.Writer, config domain.NormalizedConfig) {
	headerColor.Fprintf(w, "%s", config.Board.ID)
	if config.NetworkingEnabled() {
		fmt.Fprintf(w, " (mqtt %s)", config.Network.MQTTBroker)
	}
	fmt.Fprintln(w)

	for _, sensor := range config.Sensors {
		var wiring string
		switch {
		case sensor.Bus != nil:
			wiring = fmt.Sprintf("%s bus SDA=%d SCL=%d", sensor.Bus.Name, sensor.Bus.SDA, sensor.Bus.SCL)
		case sensor.Pin != nil:
			wiring = fmt.Sprintf("%s pin %d", sensor.Descriptor.PinClass, *sensor.Pin)
		default:
			wiring = "no wiring"
		}
		fmt.Fprintf(w, "  %-8s %s\n", sensor.Descriptor.Type, wiring)
	}
}

func shortFingerprint(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
