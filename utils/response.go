package utils

import (
	"math"

	"github.com/kataras/iris/v12"
)

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasMore    bool  `json:"hasMore"`
}

func NewPagination(total int64, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

func JSONPage(ctx iris.Context, data interface{}, page, limit int, total int64) {
	ctx.JSON(iris.Map{
		"success":    true,
		"data":       data,
		"pagination": NewPagination(total, page, limit),
	})
}

func JSONData(ctx iris.Context, data interface{}) {
	ctx.JSON(iris.Map{"success": true, "data": data})
}

func JSONError(ctx iris.Context, status int, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"success": false, "error": message})
}
