package walkin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// フォーム側フォワーダからの送信通知
	// POST /submissions
	r.POST("/submissions", h.CreateSubmission)
}

// POST /submissions
func (h *Handler) CreateSubmission(c *gin.Context) {
	var sub FormSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}

	res, err := h.svc.Handle(c.Request.Context(), sub)
	if err != nil {
		// 倉庫側の失敗はログだけ残してホストへは成功で返す。
		// エラーを返すとフォーム側フォワーダが同じ送信を再送してくるため。
		// 通知フック（メール等）を足すならここ。
		log.Printf("[ERROR] intake %s: insert failed: %v", res.IntakeULID, err)
		res.Message = "insert failed"
		c.JSON(http.StatusOK, res)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

type Code string

const CodeInvalidArgument Code = "INVALID_ARGUMENT"

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}
