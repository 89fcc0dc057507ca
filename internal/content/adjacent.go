package content

// Previous returns the item just after slug in newest-first order, which is
// the chronologically older neighbour. It returns nil when slug is absent or
// is the oldest item.
func Previous(items []Item, slug string) *Item {
	return neighbour(items, slug, 1)
}

// Next returns the chronologically newer neighbour of slug, or nil.
func Next(items []Item, slug string) *Item {
	return neighbour(items, slug, -1)
}

func neighbour(items []Item, slug string, offset int) *Item {
	for i := range items {
		if items[i].Slug() != slug {
			continue
		}
		j := i + offset
		if j < 0 || j >= len(items) {
			return nil
		}
		item := items[j]
		return &item
	}
	return nil
}
