package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Page struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
	Pages int         `json:"pages"`
}

// Paginate reads page/size query params, counts the query and scans the
// requested page into dest.
func Paginate(c *gin.Context, query *gorm.DB, dest interface{}) (*Page, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	if err := query.Offset((page - 1) * size).Limit(size).Find(dest).Error; err != nil {
		return nil, err
	}

	pages := int((total + int64(size) - 1) / int64(size))
	return &Page{Items: dest, Total: total, Page: page, Size: size, Pages: pages}, nil
}
