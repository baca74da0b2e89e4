package http

import (
	"github.com/shopspring/decimal"

	cartapp "github.com/geministore/storefront/internal/cart/app"
	cartdomain "github.com/geministore/storefront/internal/cart/domain"
	catalogdomain "github.com/geministore/storefront/internal/catalog/domain"
	checkoutapp "github.com/geministore/storefront/internal/checkout/app"
	checkoutdomain "github.com/geministore/storefront/internal/checkout/domain"
)

// Monetary values are rounded to two decimals here and nowhere else.

type productDTO struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          string            `json:"price"`
	Description    string            `json:"description"`
	Image          string            `json:"image"`
	Category       string            `json:"category"`
	InStock        bool              `json:"in_stock"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
}

func toProductDTO(p catalogdomain.Product) productDTO {
	return productDTO{
		ID:             p.ID,
		Name:           p.Name,
		Price:          p.Price.StringFixed(2),
		Description:    p.Description,
		Image:          p.Image,
		Category:       p.Category,
		InStock:        p.InStock,
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		Features:       p.Features,
		Specifications: p.Specifications,
	}
}

func toProductDTOs(products []catalogdomain.Product) []productDTO {
	out := make([]productDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out
}

type lineItemDTO struct {
	ProductID string            `json:"product_id"`
	Name      string            `json:"name"`
	Price     string            `json:"price"`
	Image     string            `json:"image"`
	Quantity  int               `json:"quantity"`
	Variant   map[string]string `json:"variant,omitempty"`
	LineTotal string            `json:"line_total"`
}

type cartSummaryDTO struct {
	Items     []lineItemDTO `json:"items"`
	ItemCount int           `json:"item_count"`
	Subtotal  string        `json:"subtotal"`
	Tax       string        `json:"tax"`
	Shipping  string        `json:"shipping"`
	Discount  *discountDTO  `json:"discount,omitempty"`
	Total     string        `json:"total"`
}

type discountDTO struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
}

func toCartSummaryDTO(sum cartapp.Summary) cartSummaryDTO {
	items := make([]lineItemDTO, 0, len(sum.Items))
	for _, li := range sum.Items {
		items = append(items, toLineItemDTO(li))
	}

	dto := cartSummaryDTO{
		Items:     items,
		ItemCount: sum.Totals.ItemCount,
		Subtotal:  sum.Totals.Subtotal.StringFixed(2),
		Tax:       sum.Totals.Tax.StringFixed(2),
		Shipping:  sum.Totals.Shipping.StringFixed(2),
		Total:     sum.Totals.Total.StringFixed(2),
	}
	if sum.Discount != nil {
		dto.Discount = &discountDTO{
			Code:   sum.Discount.Code,
			Amount: sum.Discount.Amount.StringFixed(2),
		}
	}
	return dto
}

func toLineItemDTO(li cartdomain.LineItem) lineItemDTO {
	return lineItemDTO{
		ProductID: li.ProductID,
		Name:      li.Name,
		Price:     li.Price.StringFixed(2),
		Image:     li.Image,
		Quantity:  li.Quantity,
		Variant:   li.Variant,
		LineTotal: li.Price.Mul(decimal.NewFromInt(int64(li.Quantity))).StringFixed(2),
	}
}

type draftDTO struct {
	ID       string `json:"id"`
	Step     int    `json:"step"`
	StepName string `json:"step_name"`
}

func toDraftDTO(d checkoutdomain.Draft) draftDTO {
	return draftDTO{
		ID:       d.ID,
		Step:     int(d.Step),
		StepName: d.Step.String(),
	}
}

type confirmationDTO struct {
	OrderID           string `json:"order_id"`
	Total             string `json:"total"`
	PlacedAt          string `json:"placed_at"`
	EstimatedDelivery string `json:"estimated_delivery"`
}

func toConfirmationDTO(c checkoutapp.Confirmation) confirmationDTO {
	return confirmationDTO{
		OrderID:           c.OrderID,
		Total:             c.Total.StringFixed(2),
		PlacedAt:          c.PlacedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		EstimatedDelivery: c.EstimatedDelivery.UTC().Format("2006-01-02"),
	}
}
