package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockPage struct {
	mock.Mock
}

func (m *mockPage) Navigate(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

func (m *mockPage) ElementByID(id string) (Element, error) {
	args := m.Called(id)
	el, _ := args.Get(0).(Element)
	return el, args.Error(1)
}

func (m *mockPage) ElementByXPath(xpath string) (Element, error) {
	args := m.Called(xpath)
	el, _ := args.Get(0).(Element)
	return el, args.Error(1)
}

func (m *mockPage) Screenshot(path string) error {
	return m.Called(path).Error(0)
}

type mockElement struct {
	mock.Mock
}

func (m *mockElement) Text() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockElement) Clear() error {
	return m.Called().Error(0)
}

func (m *mockElement) Input(text string) error {
	return m.Called(text).Error(0)
}

func (m *mockElement) Click() error {
	return m.Called().Error(0)
}

func (m *mockElement) BackgroundColor() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
