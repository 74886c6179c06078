package pipeline

// ProductDescription is the product the brand value proposition is built for.
// It is either taken from the monetization stage or written by the operator.
type ProductDescription interface {
	Text() string
	Source() string
	// inputs are the stages the description was derived from.
	inputs() []StageID
}

// GeneratedProduct reuses the monetization stage output as the description.
type GeneratedProduct struct {
	Description string
}

func (p GeneratedProduct) Text() string   { return p.Description }
func (p GeneratedProduct) Source() string { return "generated" }
func (p GeneratedProduct) inputs() []StageID {
	return []StageID{StageInsight, StageMonetization}
}

// ManualProduct is a description supplied by the operator.
type ManualProduct struct {
	Description string
}

func (p ManualProduct) Text() string      { return p.Description }
func (p ManualProduct) Source() string    { return "manual" }
func (p ManualProduct) inputs() []StageID { return []StageID{StageInsight} }
