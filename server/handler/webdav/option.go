package webdav

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders  = "Authorization, Content-Type, Content-Range, Depth, Destination, Overwrite, Lock-Token, Timeout"
	corsExposeHeaders = "DAV, Content-Length, ETag, Last-Modified, Lock-Token"
)

func (h *WebdavHandler) handleOption(c *gin.Context) {
	allow := strings.Join(AllowMethods, ", ")
	header := c.Writer.Header()
	header.Set("Allow", allow)
	header.Set("DAV", "1, 2")
	header.Set("MS-Author-Via", "DAV")
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", allow)
	header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	header.Set("Access-Control-Expose-Headers", corsExposeHeaders)
	header.Set("Content-Length", "0")
	c.Status(http.StatusOK)
}
