package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pesection/pkg/pe"
)

var infoCmd = &cobra.Command{
	Use:   "info <pe-file>",
	Short: "Print section headers and content summaries",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
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
		name := section.Name()
		if !section.IsNameSafe() {
			name = fmt.Sprintf("<unsafe name % x>", section.Name())
		}

		fmt.Printf("%-10s RVA 0x%08X-0x%08X  raw 0x%08X+0x%X\n",
			name, section.RVA(), section.EndRVA(), section.RawOffset(), section.RawSize())
		fmt.Printf("           code=%-5t exec=%-5t entropy=%.2f xxh64=%016x\n",
			section.IsCode(), section.IsExecutable(), section.Entropy(), section.Hash())

		if section.RawOffset() != 0 &&
			pe.AlignDownUInt32(section.RawOffset(), pe.IMAGE_FILE_ALIGNMENT_HARDCODED_VALUE) != section.RawOffset() {
			fmt.Printf("           raw offset not aligned to 0x%X\n",
				pe.IMAGE_FILE_ALIGNMENT_HARDCODED_VALUE)
		}
	}
	return nil
}
