package app

import (
	"context"

	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/marvel"
	"github.com/five82/cerebro/internal/navigation"
	"github.com/five82/cerebro/internal/search"
)

// SearchOnce runs one prefix search through the same pipeline the search view
// uses, without the debounce wait, and returns the sorted, truncated results.
func SearchOnce(ctx context.Context, client marvel.Catalog, prefix string, sort catalog.SortKey) ([]catalog.CharacterSummary, error) {
	controller := search.NewController(ctx, sort)
	defer controller.Close()

	gen, debounce := controller.Input(prefix)
	if !debounce {
		return nil, nil
	}
	fetch, ok := controller.Expire(gen)
	if !ok {
		return controller.Results(), nil
	}
	items, err := fetch.Do(client)
	controller.Resolve(fetch.Generation, items, err)
	if err != nil {
		return nil, err
	}
	return controller.Results(), nil
}

// LookupOnce fetches one character. A missing record is marvel.ErrNotFound.
func LookupOnce(ctx context.Context, client marvel.Catalog, id int) (*marvel.Character, error) {
	return navigation.Lookup{Ctx: ctx, ID: id}.Do(client)
}
