package mocks

import (
	"net/http"

	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (_m *Client) Do(req *http.Request) (*http.Response, error) {
	ret := _m.Called(req)
	resp, _ := ret.Get(0).(*http.Response) //nolint:errcheck
	return resp, ret.Error(1)
}
