package book_duty

import (
	"context"

	bookDuty "github.com/m04kA/CDS-DutyRosterService/internal/usecase/book_duty"
)

type BookDutyUseCase interface {
	Execute(ctx context.Context, req *bookDuty.Request) (*bookDuty.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
