package views

import (
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"productpanel/internal/models"
)

// The admin client injects these fragments straight into the page, so the
// markup mirrors what its CSS and event hooks expect (products-table,
// btn-pagination, error-<field> placeholders, openEditModal and friends).

const emptyTableHTML = `<p class="text-center">No products found</p>`

var tableTemplate = template.Must(template.New("table").Parse(`<table class="products-table">
<thead>
<tr><th>Name</th><th>Description</th><th>Price</th><th>Image</th><th>Availability</th><th>Stock</th><th>Actions</th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr>
<td data-label="Name">{{.Name}}</td>
<td data-label="Description" title="{{.Title}}">{{.Description}}</td>
<td data-label="Price">{{.Price}} RON</td>
<td data-label="Image"><img src="{{.Image}}" alt="{{.Alt}}" class="product-img"></td>
<td data-label="Availability">{{.Availability}}</td>
<td data-label="Stock">{{.Stock}}</td>
<td data-label="Actions"><button class="btn-edit" onclick="{{.EditClick}}">Edit</button><button class="btn-delete" onclick="{{.DeleteClick}}">Delete</button></td>
</tr>
{{- end}}
</tbody>
</table>`))

var paginationTemplate = template.Must(template.New("pagination").Parse(`<div class="pagination">
{{- if .PrevDisabled}}<button class="btn-pagination" disabled>Previous</button>
{{- else}}<button class="btn-pagination" onclick="{{.PrevClick}}">Previous</button>
{{- end}}
{{- range .Pages}}
{{- if .Active}}<button class="btn-pagination active" onclick="{{.Click}}">{{.Number}}</button>
{{- else}}<button class="btn-pagination" onclick="{{.Click}}">{{.Number}}</button>
{{- end}}
{{- end}}
{{- if .NextDisabled}}<button class="btn-pagination" disabled>Next</button>
{{- else}}<button class="btn-pagination" onclick="{{.NextClick}}">Next</button>
{{- end}}</div>`))

var formTemplate = template.Must(template.New("form").Parse(`<div class="form-group">
<label for="productName">Name *</label>
<input type="text" id="productName" name="name" value="{{.Name}}" required>
<span class="error-message" id="error-name"></span>
</div>
<div class="form-group">
<label for="productDescription">Description</label>
<textarea id="productDescription" name="description" rows="4">{{.Description}}</textarea>
<span class="error-message" id="error-description"></span>
</div>
<div class="form-group">
<label for="productPrice">Price (RON) *</label>
<input type="number" id="productPrice" name="price" value="{{.Price}}" step="0.01" min="0" required>
<span class="error-message" id="error-price"></span>
</div>
<div class="form-group">
<label for="productImage">Image URL</label>
<input type="url" id="productImage" name="image" value="{{.Image}}" placeholder="https://example.com/image.jpg">
<span class="error-message" id="error-image"></span>
</div>
<div class="form-group">
<label for="productAvailability">Availability Date</label>
<input type="date" id="productAvailability" name="availability_date" value="{{.AvailabilityDate}}">
<span class="error-message" id="error-availability_date"></span>
</div>
<div class="form-group">
<label class="checkbox-label">
<input type="checkbox" id="productInStock" name="in_stock"{{if .InStock}} checked{{end}}> In Stock
</label>
</div>
<div class="form-actions">
<button type="submit" class="btn-primary">Save</button>
<button type="button" class="btn-secondary" onclick="closeModal()">Cancel</button>
</div>`))

// The onclick expressions are prebuilt as template.JS: letting the template
// interpolate bare integers in a script context would pad them with spaces.
type tableRow struct {
	Name         template.HTML
	Description  template.HTML
	Title        string
	Price        string
	Image        string
	Alt          string
	Availability string
	Stock        string
	EditClick    template.JS
	DeleteClick  template.JS
}

type pageButton struct {
	Number int
	Active bool
	Click  template.JS
}

type formData struct {
	Name             string
	Description      string
	Price            string
	Image            string
	AvailabilityDate string
	InStock          bool
}

// Highlight HTML-escapes text and wraps every case-insensitive occurrence of
// term in a <mark> element.
func Highlight(text, term string) template.HTML {
	if term == "" || text == "" {
		return template.HTML(template.HTMLEscapeString(text))
	}

	// Lowering a rune can change its byte length (İ shrinks, Ⱥ grows), so
	// matching runs on a lowered copy whose rune boundaries are mapped back
	// to the original text. Slicing text at lowered byte offsets would split
	// runes.
	lowerTerm := strings.ToLower(term)
	var lowered strings.Builder
	var origStarts, lowStarts []int
	for i, r := range text {
		origStarts = append(origStarts, i)
		lowStarts = append(lowStarts, lowered.Len())
		lowered.WriteRune(unicode.ToLower(r))
	}
	origStarts = append(origStarts, len(text))
	lowerText := lowered.String()
	lowStarts = append(lowStarts, len(lowerText))

	var b strings.Builder
	last := 0
	ri := 0
	for ri < len(lowStarts)-1 {
		if !strings.HasPrefix(lowerText[lowStarts[ri]:], lowerTerm) {
			ri++
			continue
		}
		end := ri
		for lowStarts[end]-lowStarts[ri] < len(lowerTerm) {
			end++
		}
		b.WriteString(template.HTMLEscapeString(text[origStarts[last]:origStarts[ri]]))
		b.WriteString("<mark>")
		b.WriteString(template.HTMLEscapeString(text[origStarts[ri]:origStarts[end]]))
		b.WriteString("</mark>")
		last = end
		ri = end
	}
	b.WriteString(template.HTMLEscapeString(text[origStarts[last]:]))
	return template.HTML(b.String())
}

// RenderTable renders the product listing fragment. Every occurrence of
// searchTerm in a product's name or description is highlighted.
func RenderTable(products []models.Product, searchTerm string) (string, error) {
	if len(products) == 0 {
		return emptyTableHTML, nil
	}

	rows := make([]tableRow, 0, len(products))
	for _, p := range products {
		description := "N/A"
		if p.Description != nil {
			description = *p.Description
		}
		image := ""
		if p.Image != nil {
			image = *p.Image
		}
		availability := "N/A"
		if p.AvailabilityDate != nil {
			availability = *p.AvailabilityDate
		}
		stock := "✗ Out of Stock"
		if p.InStock {
			stock = "✓ In Stock"
		}

		rows = append(rows, tableRow{
			Name:         Highlight(p.Name, searchTerm),
			Description:  Highlight(description, searchTerm),
			Title:        description,
			Price:        p.Price.String(),
			Image:        image,
			Alt:          p.Name,
			Availability: availability,
			Stock:        stock,
			EditClick:    template.JS(fmt.Sprintf("openEditModal(%d)", p.ID)),
			DeleteClick:  template.JS(fmt.Sprintf("confirmDelete(%d)", p.ID)),
		})
	}

	var b strings.Builder
	if err := tableTemplate.Execute(&b, struct{ Rows []tableRow }{rows}); err != nil {
		return "", fmt.Errorf("failed to render products table: %w", err)
	}
	return b.String(), nil
}

// RenderPagination renders the Previous/page-number/Next controls. A single
// page needs no controls and renders as an empty string.
func RenderPagination(currentPage, totalPages int) (string, error) {
	if totalPages <= 1 {
		return "", nil
	}

	loadPage := func(n int) template.JS {
		return template.JS(fmt.Sprintf("loadProducts(%d)", n))
	}

	pages := make([]pageButton, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		pages = append(pages, pageButton{Number: i, Active: i == currentPage, Click: loadPage(i)})
	}

	data := struct {
		PrevClick, NextClick       template.JS
		PrevDisabled, NextDisabled bool
		Pages                      []pageButton
	}{
		PrevClick:    loadPage(currentPage - 1),
		NextClick:    loadPage(currentPage + 1),
		PrevDisabled: currentPage <= 1,
		NextDisabled: currentPage >= totalPages,
		Pages:        pages,
	}

	var b strings.Builder
	if err := paginationTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render pagination: %w", err)
	}
	return b.String(), nil
}

// RenderForm renders the create/edit form fragment, pre-populated from
// product when given. A nil product yields an empty form.
func RenderForm(product *models.Product) (string, error) {
	var data formData
	if product != nil {
		data.Name = product.Name
		data.Price = product.Price.String()
		data.InStock = product.InStock
		if product.Description != nil {
			data.Description = *product.Description
		}
		if product.Image != nil {
			data.Image = *product.Image
		}
		if product.AvailabilityDate != nil {
			data.AvailabilityDate = *product.AvailabilityDate
		}
	}

	var b strings.Builder
	if err := formTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render product form: %w", err)
	}
	return b.String(), nil
}
