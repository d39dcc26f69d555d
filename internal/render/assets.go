package render

import (
	"net/url"
	"strconv"

	"github.com/utsavgifts/catalogd/internal/model"
)

// PageURL builds the catalog page URL with the filter state encoded as
// query parameters, the same parameters the server's page handler reads.
func PageURL(baseURL string, c model.Criteria, discount int) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("minPrice", strconv.FormatFloat(c.Price.Min, 'f', -1, 64))
	q.Set("maxPrice", strconv.FormatFloat(c.Price.Max, 'f', -1, 64))
	for _, v := range c.Categories {
		q.Add("category", v)
	}
	for _, v := range c.Themes {
		q.Add("theme", v)
	}
	for _, v := range c.Occasions {
		q.Add("occasion", v)
	}
	for _, v := range c.ProductNames {
		q.Add("name", v)
	}
	for _, v := range c.CustomTypes {
		q.Add("customType", v)
	}
	if discount > 0 {
		q.Set("discount", strconv.Itoa(model.ClampDiscount(discount)))
	}
	q.Set("print", "1")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// recompressScript redraws every product image onto a canvas bounded at
// 600x600 and swaps the element source for the JPEG result, so the
// printed document stays within the delivery size budget.
const recompressScript = `async () => {
	const MAX = 600;
	const QUALITY = 0.75;
	const imgs = Array.from(document.querySelectorAll('img'));
	await Promise.all(imgs.map(async (img) => {
		try {
			if (!img.complete) {
				await new Promise((resolve) => {
					img.addEventListener('load', resolve, { once: true });
					img.addEventListener('error', resolve, { once: true });
					setTimeout(resolve, 5000);
				});
			}
			const w = img.naturalWidth, h = img.naturalHeight;
			if (!w || !h) return;
			const scale = Math.min(1, MAX / w, MAX / h);
			const canvas = document.createElement('canvas');
			canvas.width = Math.max(1, Math.round(w * scale));
			canvas.height = Math.max(1, Math.round(h * scale));
			canvas.getContext('2d').drawImage(img, 0, 0, canvas.width, canvas.height);
			img.src = canvas.toDataURL('image/jpeg', QUALITY);
		} catch (e) {
			// A tainted or broken image keeps its original source.
		}
	}));
	return imgs.length;
}`

// printCSS pins the print layout: one intro page, no card split across
// page boundaries, and uniform title blocks so prices align.
const printCSS = `
@page {
	size: A4;
	margin: 24mm;
}
.intro-section {
	page-break-after: always;
}
.product-card {
	break-inside: avoid;
	page-break-inside: avoid;
}
.product-title {
	min-height: 72px;
}
.product-price {
	margin-top: auto;
}
.filter-panel, .toolbar, .no-print {
	display: none !important;
}
`
