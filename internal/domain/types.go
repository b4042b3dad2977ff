package domain

import (
	"fmt"
	"strings"
)

// Category selects the instruction template and the highlighting rules applied
// to the model's answer.
type Category int

const (
	CategoryFood Category = iota + 1
	CategoryDrug
	CategoryCosmetic
	CategoryCalories
)

// Categories lists every category in display order.
var Categories = []Category{CategoryFood, CategoryDrug, CategoryCosmetic, CategoryCalories}

// ExpertiseLevel picks between the lay and professional phrasing of a
// category's template. It has no effect for CategoryCalories.
type ExpertiseLevel int

const (
	ExpertiseRegular ExpertiseLevel = iota + 1
	ExpertiseProfessional
)

// ParseCategory maps a form value to a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "food":
		return CategoryFood, nil
	case "drug", "medicine":
		return CategoryDrug, nil
	case "cosmetic":
		return CategoryCosmetic, nil
	case "calories":
		return CategoryCalories, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// ParseExpertise maps a form value to an ExpertiseLevel. An empty value is
// treated as regular so the calorie form can omit the field.
func ParseExpertise(s string) (ExpertiseLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular":
		return ExpertiseRegular, nil
	case "professional", "pro":
		return ExpertiseProfessional, nil
	default:
		return 0, fmt.Errorf("unknown expertise level %q", s)
	}
}

func (c Category) String() string {
	switch c {
	case CategoryFood:
		return "food"
	case CategoryDrug:
		return "drug"
	case CategoryCosmetic:
		return "cosmetic"
	case CategoryCalories:
		return "calories"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Label is the selector text shown to the user.
func (c Category) Label() string {
	switch c {
	case CategoryFood:
		return "🍎 Food Safety Checker"
	case CategoryDrug:
		return "💊 Drug/Medicine Safety Checker"
	case CategoryCosmetic:
		return "🧴 Cosmetic Product Safety Checker"
	case CategoryCalories:
		return "🔢 Check Calories"
	default:
		return c.String()
	}
}

func (c Category) Description() string {
	switch c {
	case CategoryFood:
		return "Analyze food products, ingredients, supplements, and beverages for safety."
	case CategoryDrug:
		return "Check medications, over-the-counter drugs, and supplements for safety concerns."
	case CategoryCosmetic:
		return "Evaluate skincare, makeup, and personal care products for harmful ingredients."
	case CategoryCalories:
		return "Calculate total calories and get nutritional breakdown of food items in your image."
	default:
		return ""
	}
}

// Subject names the thing photographed. It appears in the upload prompt, the
// share message and the download file name.
func (c Category) Subject() string {
	switch c {
	case CategoryFood:
		return "food item"
	case CategoryDrug:
		return "medicine/drug"
	case CategoryCosmetic:
		return "cosmetic product"
	case CategoryCalories:
		return "meal or food items"
	default:
		return "item"
	}
}

func (c Category) Placeholder() string {
	switch c {
	case CategoryFood:
		return "E.g., Is this safe during the first trimester of pregnancy?"
	case CategoryDrug:
		return "E.g., Can I take this while breastfeeding?"
	case CategoryCosmetic:
		return "E.g., Are there any harmful ingredients for sensitive skin?"
	case CategoryCalories:
		return "E.g., How does this compare to my daily caloric needs?"
	default:
		return ""
	}
}

// UsesExpertise reports whether the expertise level changes the template.
func (c Category) UsesExpertise() bool {
	return c != CategoryCalories
}

// MarksVerdicts reports whether SAFE / NOT SAFE tags are applied to the answer.
func (c Category) MarksVerdicts() bool {
	return c != CategoryCalories
}

func (l ExpertiseLevel) String() string {
	switch l {
	case ExpertiseRegular:
		return "regular"
	case ExpertiseProfessional:
		return "professional"
	default:
		return fmt.Sprintf("expertise(%d)", int(l))
	}
}

func (l ExpertiseLevel) Label() string {
	if l == ExpertiseProfessional {
		return "Yes, I am a healthcare professional"
	}
	return "No, I am a regular user"
}

func (l ExpertiseLevel) Explanation() string {
	if l == ExpertiseProfessional {
		return "You'll receive more detailed, technical information with clinical references."
	}
	return "You'll receive simplified explanations with essential safety information."
}

// Image is an uploaded photo with its MIME type.
type Image struct {
	Data     []byte
	MimeType string
}

// AnalysisRequest is one user submission.
type AnalysisRequest struct {
	Category  Category
	Expertise ExpertiseLevel
	Image     Image
	Question  string
}
