package http

import "github.com/labstack/echo/v4"

// Response is the envelope every endpoint answers with: the status code is
// repeated in the body so clients reading only the payload can still branch.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func JSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Status: status, Message: message, Data: data})
}

func Fail(c echo.Context, status int, message string) error {
	return JSON(c, status, message, nil)
}
