// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type directoryEntry struct {
	Name     string `validate:"required,max=255"`
	Email    string `validate:"required,email"`
	Wilaya   string `validate:"required,wilaya"`
	Category string `validate:"required,sector"`
	Website  string `validate:"omitempty,url"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid entry passes", func(t *testing.T) {
		entry := directoryEntry{
			Name:     "SARL Nour",
			Email:    "contact@nour.dz",
			Wilaya:   "Algiers",
			Category: "food",
			Website:  "https://nour.dz",
		}
		assert.NoError(t, ValidateStruct(&entry))
	})

	t.Run("unknown wilaya fails", func(t *testing.T) {
		entry := directoryEntry{
			Name:     "SARL Nour",
			Email:    "contact@nour.dz",
			Wilaya:   "Atlantis",
			Category: "food",
		}
		err := ValidateStruct(&entry)
		require.Error(t, err)

		errs := GetValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "wilaya", errs[0].Field)
		assert.Equal(t, "Unknown wilaya", errs[0].Message)
	})

	t.Run("unknown sector fails", func(t *testing.T) {
		entry := directoryEntry{
			Name:     "SARL Nour",
			Email:    "contact@nour.dz",
			Wilaya:   "Oran",
			Category: "rockets",
		}
		err := ValidateStruct(&entry)
		require.Error(t, err)

		errs := GetValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "sector", errs[0].Tag)
	})

	t.Run("every violation is reported", func(t *testing.T) {
		entry := directoryEntry{
			Email:    "not-an-email",
			Wilaya:   "Atlantis",
			Category: "rockets",
		}
		errs := GetValidationErrors(ValidateStruct(&entry))
		assert.Len(t, errs, 4)
	})
}
