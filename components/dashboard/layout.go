package dashboard

import (
	"cmp"
	"slices"
)

// arrange applies a viewer's overrides to one area. Rows, when saved, decide
// the order and widths; otherwise AreaOrder decides the order. Widgets not
// named keep their store order after the named ones, and hidden widgets are
// dropped last.
func (o LayoutOverrides) arrange(area string, widgets []WidgetInstance) ([]WidgetInstance, map[string]int) {
	order, widths := o.AreaOrder[area], map[string]int(nil)
	if rows := o.AreaRows[area]; len(rows) > 0 {
		order, widths = rowPlacement(rows)
	}
	out := slices.Clone(widgets)
	if len(order) > 0 {
		rank := make(map[string]int, len(order))
		for i, id := range order {
			if _, dup := rank[id]; !dup {
				rank[id] = i
			}
		}
		rankOf := func(w WidgetInstance) int {
			if r, ok := rank[w.ID]; ok {
				return r
			}
			return len(order)
		}
		slices.SortStableFunc(out, func(a, b WidgetInstance) int { return cmp.Compare(rankOf(a), rankOf(b)) })
	}
	if len(o.HiddenWidgets) > 0 {
		out = slices.DeleteFunc(out, func(w WidgetInstance) bool { return o.HiddenWidgets[w.ID] })
	}
	return out, widths
}

// rowPlacement flattens rows into a widget order and the grid width of each
// slot that set one.
func rowPlacement(rows []LayoutRow) ([]string, map[string]int) {
	var order []string
	widths := map[string]int{}
	for _, row := range rows {
		for _, slot := range row.Widgets {
			if slot.ID == "" {
				continue
			}
			order = append(order, slot.ID)
			if slot.Width > 0 {
				widths[slot.ID] = slot.Width
			}
		}
	}
	return order, widths
}

func applyWidths(widgets []WidgetInstance, widths map[string]int) {
	for i := range widgets {
		width, ok := widths[widgets[i].ID]
		if !ok {
			continue
		}
		if widgets[i].Metadata == nil {
			widgets[i].Metadata = map[string]any{}
		}
		widgets[i].Metadata["width"] = width
	}
}
