// Package controllers controllers/product_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dalibouzir/MeriemBooking-sub000/logger"
	"github.com/dalibouzir/MeriemBooking-sub000/store"
)

// ProductController serves the public storefront endpoints.
type ProductController struct {
	products ProductStoreInterface
}

// NewProductController creates a new ProductController.
func NewProductController(products ProductStoreInterface) *ProductController {
	return &ProductController{products: products}
}

// ListProducts returns the catalog.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.products.List(c.Request.Context())
	if err != nil {
		logger.Error.Printf("[ListProducts] query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// DownloadProduct bumps the download counter and redirects to the file.
// Paid products are not downloadable through this endpoint.
func (pc *ProductController) DownloadProduct(c *gin.Context) {
	slug := c.Param("slug")
	product, err := pc.products.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logger.Error.Printf("[DownloadProduct] lookup %s failed: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}
	if !product.IsFree {
		c.JSON(http.StatusForbidden, gin.H{"error": "product is not free"})
		return
	}

	// counter is best-effort; a failed bump must not block the download
	if err := pc.products.IncrementDownloads(c.Request.Context(), product.ID); err != nil {
		logger.Warn.Printf("[DownloadProduct] counter bump failed for %s: %v", product.ID, err)
	}
	c.Redirect(http.StatusFound, product.FileURL)
}
