package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func roomsOnlyPackage() *Package {
	return &Package{
		Name:     "Rooms Only",
		Category: PackageRoomsOnly,
		Resources: []PackageResource{
			{ResourceID: 1, Quantity: 1, Flexible: true},
		},
	}
}

func fixedPackage() *Package {
	return &Package{
		Name:            "Wedding Package",
		Category:        PackageFullVenue,
		BasePricePerDay: 1500000,
		Resources: []PackageResource{
			{ResourceID: 2, Quantity: 1},
			{ResourceID: 3, Quantity: 10},
		},
	}
}

func TestPackageValidate(t *testing.T) {
	assert.NoError(t, roomsOnlyPackage().Validate())
	assert.NoError(t, fixedPackage().Validate())
}

func TestPackageValidate_Category(t *testing.T) {
	p := fixedPackage()
	p.Category = "spa"
	assert.ErrorIs(t, p.Validate(), ErrInvalidCategory)
}

func TestPackageValidate_NoResources(t *testing.T) {
	p := fixedPackage()
	p.Resources = nil
	assert.ErrorIs(t, p.Validate(), ErrNoResources)
}

func TestPackageValidate_RoomsOnlyVariant(t *testing.T) {
	t.Run("base price forbidden", func(t *testing.T) {
		p := roomsOnlyPackage()
		p.BasePricePerDay = 100
		assert.ErrorIs(t, p.Validate(), ErrFixedPriceOnRooms)
	})

	t.Run("flexible line required", func(t *testing.T) {
		p := roomsOnlyPackage()
		p.Resources[0].Flexible = false
		assert.ErrorIs(t, p.Validate(), ErrMissingFlexibleRoom)
	})

	t.Run("exactly one flexible line", func(t *testing.T) {
		p := roomsOnlyPackage()
		p.Resources = append(p.Resources, PackageResource{ResourceID: 2, Quantity: 1, Flexible: true})
		assert.ErrorIs(t, p.Validate(), ErrMissingFlexibleRoom)
	})
}

func TestPackageValidate_FixedVariant(t *testing.T) {
	t.Run("base price required", func(t *testing.T) {
		p := fixedPackage()
		p.BasePricePerDay = 0
		assert.ErrorIs(t, p.Validate(), ErrMissingBasePrice)
	})

	t.Run("flexible line forbidden", func(t *testing.T) {
		p := fixedPackage()
		p.Resources[0].Flexible = true
		assert.ErrorIs(t, p.Validate(), ErrFlexibleOnFixed)
	})

	t.Run("zero quantity line", func(t *testing.T) {
		p := fixedPackage()
		p.Resources[1].Quantity = 0
		assert.Error(t, p.Validate())
	})
}

func TestFlexibleResource(t *testing.T) {
	p := roomsOnlyPackage()
	flex := p.FlexibleResource()
	assert.NotNil(t, flex)
	assert.Equal(t, int64(1), flex.ResourceID)

	assert.Nil(t, fixedPackage().FlexibleResource())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "wedding-package", Slugify("Wedding Package"))
	assert.Equal(t, "mini-hall-event", Slugify("  Mini Hall  Event! "))
	assert.Equal(t, "rooms-only", Slugify("Rooms & Only"))
	assert.Equal(t, "3-day-deal", Slugify("3 Day Deal"))
}
