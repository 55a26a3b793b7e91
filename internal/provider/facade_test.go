package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSourceFacade_Fetch(t *testing.T) {
	t.Run("first succeeds", func(t *testing.T) {
		m1 := &MockSource{name: "bsi"}
		m2 := &MockSource{name: "file"}

		m1.On("Fetch", mock.Anything).Return([]byte("<tecajnice/>"), nil)

		p := NewSourceFacade(m1, m2)
		data, err := p.Fetch(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "<tecajnice/>", string(data))
		m1.AssertExpectations(t)
		m2.AssertNotCalled(t, "Fetch", mock.Anything)
	})

	t.Run("first fails, second succeeds", func(t *testing.T) {
		m1 := &MockSource{name: "bsi"}
		m2 := &MockSource{name: "file"}

		m1.On("Fetch", mock.Anything).Return(nil, errors.New("m1 failed"))
		m2.On("Fetch", mock.Anything).Return([]byte("<tecajnice/>"), nil)

		p := NewSourceFacade(m1, m2)
		data, err := p.Fetch(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "<tecajnice/>", string(data))
		m1.AssertExpectations(t)
		m2.AssertExpectations(t)
	})

	t.Run("all fail", func(t *testing.T) {
		m1 := &MockSource{name: "bsi"}
		m2 := &MockSource{name: "file"}

		m1.On("Fetch", mock.Anything).Return(nil, errors.New("m1 failed"))
		m2.On("Fetch", mock.Anything).Return(nil, errors.New("m2 failed"))

		p := NewSourceFacade(m1, m2)
		_, err := p.Fetch(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "all sources failed")
		assert.Contains(t, err.Error(), "bsi: m1 failed")
		assert.Contains(t, err.Error(), "file: m2 failed")
		m1.AssertExpectations(t)
		m2.AssertExpectations(t)
	})

	t.Run("name", func(t *testing.T) {
		p := NewSourceFacade(&MockSource{name: "bsi"}, &MockSource{name: "file"})
		assert.Equal(t, "bsi,file", p.Name())
	})
}
