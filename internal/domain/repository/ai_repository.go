package repository

import (
	"context"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// BuildReviewer AI yordamida tayyor build haqida qisqa xulosa yozadi
type BuildReviewer interface {
	// ReviewBuild build va benchmark asosida matnli tahlil qaytaradi
	ReviewBuild(ctx context.Context, build *entity.Build) (string, error)

	// Close ulanishni yopish
	Close() error
}
