package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teslo-shop/storefront/internal/core/service"
)

func TestUIStateToggleSideMenu(t *testing.T) {
	ui := service.NewUIState()

	assert.False(t, ui.SideMenuOpen())
	assert.True(t, ui.ToggleSideMenu())
	assert.True(t, ui.SideMenuOpen())
	assert.False(t, ui.ToggleSideMenu())
	assert.False(t, ui.SideMenuOpen())
}
