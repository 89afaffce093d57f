package catalog

import (
	"context"
	"net/url"
	"strconv"
)

// API is the slice of the backend client the catalog depends on.
type API interface {
	Get(ctx context.Context, path string, result any) error
}

// Variant is a purchasable variation of a helmet (size, shell color).
type Variant struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Surcharge float64 `json:"surcharge,omitempty"`
	InStock   bool    `json:"inStock"`
}

// Product is a catalog listing entry.
type Product struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discountPrice,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	ReviewCount   int       `json:"reviewCount,omitempty"`
	Images        []string  `json:"images,omitempty"`
	Variants      []Variant `json:"variants,omitempty"`
}

// ProductQuery narrows and orders the product listing.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Sort     string
}

// encode renders the query as URL parameters, omitting zero values.
func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v.Encode()
}

// ProductPage is a paginated product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// Post is a blog listing entry.
type Post struct {
	ID      string `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt,omitempty"`
	Image   string `json:"image,omitempty"`
}

// Client fetches read-only catalog data from the backend.
type Client struct {
	api API
}

// NewClient creates a catalog client.
func NewClient(api API) (*Client, error) {
	if api == nil {
		return nil, ErrMissingClient
	}
	return &Client{api: api}, nil
}

// Products fetches a filtered, sorted product listing page.
func (c *Client) Products(ctx context.Context, q ProductQuery) (ProductPage, error) {
	path := "/products"
	if encoded := q.encode(); encoded != "" {
		path += "?" + encoded
	}

	var page ProductPage
	if err := c.api.Get(ctx, path, &page); err != nil {
		return ProductPage{}, err
	}
	return page, nil
}

// Product fetches a single product by slug.
func (c *Client) Product(ctx context.Context, slug string) (Product, error) {
	var p Product
	if err := c.api.Get(ctx, "/products/"+url.PathEscape(slug), &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// Posts fetches the blog listing.
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.api.Get(ctx, "/blog", &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
