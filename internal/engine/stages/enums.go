package stages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// ProductCategory is the kind of product the strategy is planned for.
type ProductCategory string

const (
	CategoryOnlineCourse ProductCategory = "online-course"
	CategoryApp          ProductCategory = "app"
)

// ProductCategories lists the accepted categories in display order.
var ProductCategories = []ProductCategory{CategoryOnlineCourse, CategoryApp}

// Label is the name used inside prompts and reports.
func (c ProductCategory) Label() string {
	switch c {
	case CategoryOnlineCourse:
		return "線上課程"
	case CategoryApp:
		return "App"
	}
	return string(c)
}

// ParseProductCategory accepts the enum value or its label.
func ParseProductCategory(s string) (ProductCategory, error) {
	s = strings.TrimSpace(s)
	for _, c := range ProductCategories {
		if strings.EqualFold(s, string(c)) || s == c.Label() {
			return c, nil
		}
	}
	return "", &engine.ValidationError{Field: "product", Reason: fmt.Sprintf("unknown product category %q (want online-course or app)", s)}
}

// FunnelStage is a customer-journey phase, ordered from Unaware to Advocate.
type FunnelStage int

const (
	FunnelUnaware FunnelStage = iota
	FunnelAware
	FunnelInterested
	FunnelTrial
	FunnelFirstPurchase
	FunnelRepeat
	FunnelAdvocate
)

// FunnelStageCount is the number of funnel phases.
const FunnelStageCount = 7

var funnelStageNames = [FunnelStageCount]string{
	"unaware", "aware", "interested", "trial", "first-purchase", "repeat", "advocate",
}

var funnelStageLabels = [FunnelStageCount]string{
	"陌生、未知",
	"知悉、接觸",
	"感興趣、比較",
	"體驗、試用",
	"首購、使用",
	"再購、續用",
	"分享、推薦",
}

// Valid reports whether s is one of the seven phases.
func (s FunnelStage) Valid() bool { return s >= FunnelUnaware && s <= FunnelAdvocate }

// Name is the stable English identifier.
func (s FunnelStage) Name() string {
	if !s.Valid() {
		return "stage(" + strconv.Itoa(int(s)) + ")"
	}
	return funnelStageNames[s]
}

// Label is the short Chinese description, e.g. "體驗、試用".
func (s FunnelStage) Label() string {
	if !s.Valid() {
		return ""
	}
	return funnelStageLabels[s]
}

// String renders "階段N：label".
func (s FunnelStage) String() string {
	return fmt.Sprintf("階段%d：%s", int(s), s.Label())
}

// ParseFunnelStage accepts an index ("0".."6") or an English name.
func ParseFunnelStage(s string) (FunnelStage, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if st := FunnelStage(n); st.Valid() {
			return st, nil
		}
	}
	for i, name := range funnelStageNames {
		if s == name {
			return FunnelStage(i), nil
		}
	}
	return 0, &engine.ValidationError{Field: "funnel_stage", Reason: fmt.Sprintf("unknown funnel stage %q (want 0-6 or a stage name)", s)}
}

// AudienceSegment is the target group for the funnel analysis.
type AudienceSegment string

const (
	SegmentCommunityFree AudienceSegment = "community-free"
	SegmentAppFree       AudienceSegment = "app-free"
	SegmentAppPaid       AudienceSegment = "app-paid"
)

// AudienceSegments lists the accepted segments in display order.
var AudienceSegments = []AudienceSegment{SegmentCommunityFree, SegmentAppFree, SegmentAppPaid}

// Label is the name used inside prompts.
func (a AudienceSegment) Label() string {
	switch a {
	case SegmentCommunityFree:
		return "社群免費用戶"
	case SegmentAppFree:
		return "App免費用戶"
	case SegmentAppPaid:
		return "App付費用戶"
	}
	return string(a)
}

// ParseAudienceSegment accepts the enum value or its label; empty means community-free.
func ParseAudienceSegment(s string) (AudienceSegment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SegmentCommunityFree, nil
	}
	for _, a := range AudienceSegments {
		if strings.EqualFold(s, string(a)) || s == a.Label() {
			return a, nil
		}
	}
	return "", &engine.ValidationError{Field: "audience", Reason: fmt.Sprintf("unknown audience segment %q", s)}
}
