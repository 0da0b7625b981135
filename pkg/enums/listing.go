package enums

import "fmt"

// ListingCategory represents the canonical marketplace categories.
type ListingCategory string

const (
	ListingCategoryElectronics ListingCategory = "electronics"
	ListingCategoryFurniture   ListingCategory = "furniture"
	ListingCategoryClothing    ListingCategory = "clothing"
	ListingCategoryBooks       ListingCategory = "books"
	ListingCategorySports      ListingCategory = "sports"
	ListingCategoryToys        ListingCategory = "toys"
	ListingCategoryVehicles    ListingCategory = "vehicles"
	ListingCategoryHome        ListingCategory = "home"
	ListingCategoryOther       ListingCategory = "other"
)

var validListingCategories = []ListingCategory{
	ListingCategoryElectronics,
	ListingCategoryFurniture,
	ListingCategoryClothing,
	ListingCategoryBooks,
	ListingCategorySports,
	ListingCategoryToys,
	ListingCategoryVehicles,
	ListingCategoryHome,
	ListingCategoryOther,
}

// String implements fmt.Stringer.
func (c ListingCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ListingCategory.
func (c ListingCategory) IsValid() bool {
	for _, candidate := range validListingCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseListingCategory converts raw input into a ListingCategory.
func ParseListingCategory(value string) (ListingCategory, error) {
	for _, candidate := range validListingCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing category %q", value)
}

// ListingCondition represents the canonical item condition grades.
type ListingCondition string

const (
	ListingConditionNew     ListingCondition = "new"
	ListingConditionLikeNew ListingCondition = "like_new"
	ListingConditionGood    ListingCondition = "good"
	ListingConditionFair    ListingCondition = "fair"
	ListingConditionPoor    ListingCondition = "poor"
)

var validListingConditions = []ListingCondition{
	ListingConditionNew,
	ListingConditionLikeNew,
	ListingConditionGood,
	ListingConditionFair,
	ListingConditionPoor,
}

// String implements fmt.Stringer.
func (c ListingCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ListingCondition.
func (c ListingCondition) IsValid() bool {
	for _, candidate := range validListingConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseListingCondition converts raw input into a ListingCondition.
func ParseListingCondition(value string) (ListingCondition, error) {
	for _, candidate := range validListingConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid listing condition %q", value)
}
