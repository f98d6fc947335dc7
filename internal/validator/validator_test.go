package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceForm struct {
	Price string `json:"price" validate:"omitempty,pricetier"`
}

type statusForm struct {
	Status string `json:"status" validate:"required,bookingstatus"`
}

func TestPriceTierRule(t *testing.T) {
	t.Parallel()
	v := New()

	for _, price := range []string{"", "€", "€€", "€€€€€"} {
		assert.NoError(t, v.Validate(&priceForm{Price: price}), "price %q", price)
	}

	for _, price := range []string{"$", "€€x", "100", " €"} {
		err := v.Validate(&priceForm{Price: price})
		require.Error(t, err, "price %q", price)

		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		// ключ ошибки - имя поля из json-тега
		assert.Contains(t, vErr.Errors, "price")
	}
}

func TestBookingStatusRule(t *testing.T) {
	t.Parallel()
	v := New()

	for _, status := range []string{"in attesa di conferma", "confermata", "fatta", "cancellata"} {
		assert.NoError(t, v.Validate(&statusForm{Status: status}), "status %q", status)
	}

	for _, status := range []string{"pending", "confirmed", "FATTA", ""} {
		assert.Error(t, v.Validate(&statusForm{Status: status}), "status %q", status)
	}
}
