package cli

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/samuelgthorpe/sampy/internal/scaffold"
	"github.com/spf13/cobra"
)

var genAuthor string

func init() {
	genCmd.PersistentFlags().StringVar(&genAuthor, "author", "", "Author name for the file header (default: current user)")
	genCmd.AddCommand(genClassCmd)
	genCmd.AddCommand(genFuncCmd)
	rootCmd.AddCommand(genCmd)
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a Python file skeleton",
	Long:  `Generate a class or function Python file in the current directory from the built-in skeleton templates.`,
}

var genClassCmd = &cobra.Command{
	Use:   "class <name.py>",
	Short: "Generate a class file skeleton",
	Long: `Generate a Python class file; the class name is derived from the
snake_case file name.

Example:
  sampy gen class data_loader.py   # class DataLoader`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGen(scaffold.KindClass, args[0])
	},
}

var genFuncCmd = &cobra.Command{
	Use:   "func <name.py>",
	Short: "Generate a function file skeleton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGen(scaffold.KindFunction, args[0])
	},
}

func runGen(kind, fileName string) error {
	if !strings.HasSuffix(fileName, ".py") {
		return fmt.Errorf("file name %q must end in .py", fileName)
	}

	author := genAuthor
	if author == "" {
		if u, err := user.Current(); err == nil {
			author = u.Username
		}
	}

	outPath, err := filepath.Abs(fileName)
	if err != nil {
		return err
	}

	data := scaffold.NewData(fileName, author)
	if err := scaffold.Generate(kind, data, outPath); err != nil {
		return err
	}

	rel := fileName
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, outPath); err == nil {
			rel = r
		}
	}
	fmt.Printf("Created %s\n", rel)
	return nil
}
