package domain

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
	// MaxPage bounds Page so that Offset cannot overflow.
	MaxPage = 100000
)

// PageRequest selects one page of a listing. Page is 1-based.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request into valid bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// ApprovalPage is a page of approvals plus totals.
type ApprovalPage struct {
	Items []Approval `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Pages int        `json:"pages"`
}

// NewApprovalPage builds a page, computing the page count from total and size.
func NewApprovalPage(items []Approval, total int, req PageRequest) ApprovalPage {
	req = req.Normalize()
	if items == nil {
		items = []Approval{}
	}
	return ApprovalPage{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.Size,
		Pages: (total + req.Size - 1) / req.Size,
	}
}
