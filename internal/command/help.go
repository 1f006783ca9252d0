package command

// HelpSection groups example phrases shown to users.
type HelpSection struct {
	Name     string   `json:"name"`
	Examples []string `json:"examples"`
}

var helpSections = []struct {
	name       string
	categories []string
}{
	{"Navigation", []string{"go_home", "open_cart", "open_profile", "open_orders", "go_back"}},
	{"Search", []string{"search_product", "filter_category", "sort_price_low", "sort_newest"}},
	{"Cart", []string{"add_to_cart", "remove_from_cart", "increase_quantity", "clear_cart"}},
	{"Checkout", []string{"checkout", "pay_with_momo", "pay_with_card", "pay_with_cash"}},
	{"Wishlist", []string{"add_to_wishlist", "remove_from_wishlist", "move_to_cart"}},
	{"Help", []string{"help", "repeat", "cancel_voice"}},
}

// Help returns, per section, one example phrase for each listed category:
// its declared example, or else its first literal phrase. Templates are
// never shown. Categories with neither are skipped.
func (c *Catalog) Help() []HelpSection {
	first := make(map[string]string, len(c.decls))
	for _, d := range c.decls {
		if d.Example != "" {
			first[d.ID] = d.Example
			continue
		}
		for _, e := range d.Patterns {
			if e.Kind == KindLiteral {
				first[d.ID] = e.Text
				break
			}
		}
	}

	sections := make([]HelpSection, 0, len(helpSections))
	for _, hs := range helpSections {
		section := HelpSection{Name: hs.name, Examples: []string{}}
		for _, id := range hs.categories {
			if ex, ok := first[id]; ok {
				section.Examples = append(section.Examples, ex)
			}
		}
		sections = append(sections, section)
	}
	return sections
}
