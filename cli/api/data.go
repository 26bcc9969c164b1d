package api

import (
	"net/url"
	"strconv"

	"datashare/shared"
	"datashare/shared/constants"
	"datashare/shared/endpoints"
)

// GetTables returns the tables the current user has been given access to.
func (ctx *Context) GetTables() ([]shared.Table, error) {
	var tablesResponse shared.TablesResponse
	err := ctx.get(endpoints.Tables.Format(ctx.Server), &tablesResponse)
	if err != nil {
		return nil, err
	}

	return tablesResponse.Tables, nil
}

func (ctx *Context) GetTable(name string) (shared.Table, error) {
	var tableResponse shared.TableResponse
	err := ctx.get(endpoints.Table.Format(ctx.Server, name), &tableResponse)
	if err != nil {
		return shared.Table{}, err
	}

	return tableResponse.Table, nil
}

// TableQueryValues encodes a table query. Sorting is only included if a sort
// column was chosen, and search only if non-empty.
func TableQueryValues(query shared.TableQuery) url.Values {
	page := query.Page
	if page < 1 {
		page = constants.DefaultPage
	}

	perPage := query.PerPage
	if perPage < 1 {
		perPage = constants.DefaultPerPage
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(perPage))

	if len(query.SortBy) > 0 {
		order := query.SortOrder
		if len(order) == 0 {
			order = shared.SortAsc
		}

		values.Set("sort_by", query.SortBy)
		values.Set("sort_order", string(order))
	}

	if len(query.Search) > 0 {
		values.Set("search", query.Search)
	}

	return values
}

func (ctx *Context) GetTableData(
	name string,
	query shared.TableQuery,
) (shared.TableDataResponse, error) {
	var dataResponse shared.TableDataResponse
	endpoint := endpoints.TableData.WithQuery(ctx.Server, TableQueryValues(query), name)
	err := ctx.get(endpoint, &dataResponse)
	if err != nil {
		return shared.TableDataResponse{}, err
	}

	return dataResponse, nil
}

// ExportTable downloads the full contents of a table in the requested format.
func (ctx *Context) ExportTable(name string, format shared.ExportFormat) (Download, error) {
	query := url.Values{"format": {string(format)}}
	return ctx.download(endpoints.TableExport.WithQuery(ctx.Server, query, name))
}
