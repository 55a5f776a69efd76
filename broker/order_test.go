package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideString(t *testing.T) {
	assert.Equal(t, "buy", Buy.String())
	assert.Equal(t, "sell", Sell.String())
	assert.Equal(t, "close-buy", CloseBuy.String())
	assert.Equal(t, "close-sell", CloseSell.String())
}

func TestSideClosing(t *testing.T) {
	assert.False(t, Buy.Closing())
	assert.False(t, Sell.Closing())
	assert.True(t, CloseBuy.Closing())
	assert.True(t, CloseSell.Closing())
}

func TestOrderResultSucceeded(t *testing.T) {
	assert.True(t, OrderResult{RetCode: RetCodeDone}.Succeeded())
	assert.False(t, OrderResult{RetCode: 10019}.Succeeded())
	assert.False(t, OrderResult{}.Succeeded())
}
