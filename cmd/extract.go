package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	extractName string
	extractOut  string
	extractRaw  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <pe-file>",
	Short: "Dump one section's data to a file",
	Long: `Dump a section's data to a file.

By default the mapped image (virtual size) is written; with --raw only the
on-disk slice (raw size) is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractName, "section", "s", "", "section name to extract (required)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "output file (defaults to the section name)")
	extractCmd.Flags().BoolVar(&extractRaw, "raw", false, "write the on-disk slice instead of the mapped image")
	_ = extractCmd.MarkFlagRequired("section")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	m, err := openMapped(args[0])
	if err != nil {
		return err
	}
	defer m.Close()

	sections, err := loadSections(m)
	if err != nil {
		return err
	}

	for _, section := range sections {
		if section.Name() != extractName {
			continue
		}

		out := extractOut
		if out == "" {
			if !section.IsNameSafe() {
				return fmt.Errorf("section name is not safe for use as a filename, pass --out")
			}
			out = section.Name() + ".bin"
		}

		if extractRaw {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			ok := section.SaveDataToStream(f)
			if cerr := f.Close(); cerr != nil {
				return cerr
			}
			if !ok {
				return fmt.Errorf("saving raw data of %q failed", extractName)
			}
		} else if !section.SaveToFile(out) {
			return fmt.Errorf("saving %q failed", extractName)
		}

		fmt.Printf("wrote %s\n", out)
		return nil
	}
	return fmt.Errorf("no section named %q", extractName)
}
