package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebstarmalala/securion-console/internal/cli/pagination"
)

// addPaginationFlags registers the shared list flags.
func addPaginationFlags(cmd *cobra.Command, sortFields []string) {
	cmd.Flags().Int("page", pagination.DefaultPage, "1-based page number")
	cmd.Flags().Int("page-size", 0, "results per page (default from config)")
	if len(sortFields) > 0 {
		cmd.Flags().String("sort", "", "sort by 'field' or 'field:order', fields: "+strings.Join(sortFields, ", "))
	}
}

// paginationFromFlags parses and validates the shared list flags.
// defaultPageSize comes from config when the flag is unset.
func paginationFromFlags(cmd *cobra.Command, defaultPageSize int) (pagination.Params, error) {
	params := pagination.NewParams()
	params.Page, _ = cmd.Flags().GetInt("page")
	params.PageSize, _ = cmd.Flags().GetInt("page-size")
	if params.PageSize == 0 {
		params.PageSize = defaultPageSize
	}

	if cmd.Flags().Lookup("sort") != nil {
		sortStr, _ := cmd.Flags().GetString("sort")
		field, order, err := pagination.ParseSort(sortStr)
		if err != nil {
			return pagination.Params{}, err
		}
		params.SortField = field
		params.SortOrder = order
	}

	if err := params.Validate(); err != nil {
		return pagination.Params{}, err
	}
	return *params, nil
}
