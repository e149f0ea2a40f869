package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table styling applied by the post-pass.
const (
	tableBaseClasses      = "table table-striped table-hover"
	tableHeadClass        = "thead-dark"
	tableWrapperHTML      = `<div class="table-responsive"></div>`
	tableWidthThreshold   = 90 // declared percentage width above which a table is overflow-risk
	tableColumnsThreshold = 5  // column count above which a table is overflow-risk
)

// processHeadings assigns every heading a semantic class ("heading-h2") and,
// if absent, a slugified id derived from its text with any leading
// enumeration prefix stripped. Empty or colliding slugs fall back to a
// stable hash-based identifier. IDs are unique within one fragment.
func processHeadings(body *goquery.Selection) {
	used := make(map[string]bool)

	body.Find("h1, h2, h3, h4, h5, h6").Each(func(i int, h *goquery.Selection) {
		tag := goquery.NodeName(h)
		h.AddClass("heading-" + tag)

		if id, ok := h.Attr("id"); ok && id != "" {
			used[id] = true
			return
		}

		text := strings.TrimSpace(h.Text())
		slug := Slugify(StripEnumPrefix(text))
		if slug == "" || used[slug] {
			slug = HashID("h", text+"#"+strconv.Itoa(i))
		}
		used[slug] = true
		h.SetAttr("id", slug)
	})
}

// processLists tags every list and list item with a level-aware class,
// recursing into nested lists with incrementing level counters. Only lists
// without a list ancestor start at level 1; this covers lists nested in
// divs, blockquotes, and table cells as well as top-level ones.
func processLists(body *goquery.Selection) {
	body.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		if list.ParentsFiltered("ul, ol").Length() > 0 {
			return
		}
		tagListLevel(list, 1)
	})
}

func tagListLevel(list *goquery.Selection, level int) {
	tag := goquery.NodeName(list)
	list.AddClass(fmt.Sprintf("%s-level-%d", tag, level))

	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		li.AddClass(fmt.Sprintf("li-level-%d", level))

		li.ChildrenFiltered("ul, ol").Each(func(_ int, nested *goquery.Selection) {
			tagListLevel(nested, level+1)
		})
	})
}

// processTables augments every table with styling classes, synthesizes a
// header group from the first row when the document didn't declare one,
// applies a page-break hint, and wraps overflow-risk tables in a responsive
// wrapper element.
func processTables(body *goquery.Selection, extraClass string) {
	body.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.AddClass(strings.Fields(tableBaseClasses)...)
		if extraClass != "" {
			table.AddClass(extraClass)
		}

		ensureTableHead(table)

		// Keep tables on one page where the layout engine allows it.
		style, _ := table.Attr("style")
		if style != "" && !strings.HasSuffix(strings.TrimSpace(style), ";") {
			style += "; "
		}
		table.SetAttr("style", style+"page-break-inside: avoid;")

		if isOverflowRisk(table) {
			table.WrapHtml(tableWrapperHTML)
		}
	})
}

// ensureTableHead promotes the first row into a synthesized <thead> when it
// consists of header cells and the table declared no head of its own.
func ensureTableHead(table *goquery.Selection) {
	if thead := table.Find("thead"); thead.Length() > 0 {
		thead.AddClass(tableHeadClass)
		return
	}

	firstRow := table.Find("tr").First()
	if firstRow.Length() == 0 || firstRow.ChildrenFiltered("th").Length() == 0 {
		return
	}

	table.PrependHtml(`<thead class="` + tableHeadClass + `"></thead>`)
	table.ChildrenFiltered("thead").First().AppendSelection(firstRow.Remove())
}

// isOverflowRisk reports whether a table is likely to overflow the page:
// a declared width above 90% or more than 5 columns.
func isOverflowRisk(table *goquery.Selection) bool {
	if width, ok := table.Attr("width"); ok {
		w := strings.TrimSuffix(strings.TrimSpace(width), "%")
		if w != width {
			if n, err := strconv.Atoi(w); err == nil && n > tableWidthThreshold {
				return true
			}
		}
	}

	firstRow := table.Find("tr").First()
	return firstRow.ChildrenFiltered("th, td").Length() > tableColumnsThreshold
}
