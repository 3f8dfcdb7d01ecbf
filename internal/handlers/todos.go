package handlers

import (
	"net/http"

	"todo_service/internal/models"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	indexGreeting = "Hello, welcome to the index page :)"
	statusOK      = "ok"
	statusSaved   = "saved"
)

// todoRequest is the upsert payload. id and title must be present; id 0 is a valid id.
type todoRequest struct {
	ID        *int64  `json:"id" binding:"required" example:"1"`
	Title     *string `json:"title" binding:"required" example:"buy milk"`
	Completed bool    `json:"completed" example:"false"`
}

func (r todoRequest) item() models.TodoItem {
	return models.TodoItem{ID: *r.ID, Title: *r.Title, Completed: r.Completed}
}

// @Summary      Index
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	c.String(http.StatusOK, indexGreeting)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current user
// @Description  Returns the verified user with all todos.
// @Tags         user
// @Produce      json
// @Param        Authentication  header    string  false  "JSON {\"username\":..,\"password\":..}"
// @Success      200             {object}  models.User
// @Failure      400             {object}  map[string]string
// @Failure      401             {object}  map[string]string
// @Router       /api/user [get]
// @Security     BearerAuth
func (h *Handler) getUser(c *gin.Context) {
	h.writeUser(c, verifiedUsername(c))
}

// @Summary      User by name
// @Description  Only the verified user may read itself; any other name is unauthorized.
// @Tags         user
// @Produce      json
// @Param        username        path      string  true   "Username"
// @Param        Authentication  header    string  false  "JSON {\"username\":..,\"password\":..}"
// @Success      200             {object}  models.User
// @Failure      400             {object}  map[string]string
// @Failure      401             {object}  map[string]string
// @Router       /api/users/{username} [get]
// @Security     BearerAuth
func (h *Handler) getUserByName(c *gin.Context) {
	verified := verifiedUsername(c)
	if requested := c.Param("username"); requested != verified {
		h.respondError(c, service.ErrUnauthorized, "user_lookup_denied", "verified", verified, "requested", requested)
		return
	}
	h.writeUser(c, verified)
}

func (h *Handler) writeUser(c *gin.Context, username string) {
	u, err := h.services.FetchUser(c.Request.Context(), username)
	if err != nil {
		h.respondError(c, err, "user_fetch_failed", "username", username)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Add or update todo
// @Description  Inserts the item or replaces the one with the same id.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body            body      todoRequest  true   "Todo item"
// @Param        Authentication  header    string       false  "JSON {\"username\":..,\"password\":..}"
// @Success      200             {object}  map[string]string
// @Failure      400             {object}  map[string]string
// @Failure      401             {object}  map[string]string
// @Failure      500             {object}  map[string]string
// @Router       /api/user [post]
// @Security     BearerAuth
func (h *Handler) upsertTodo(c *gin.Context) {
	var req todoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	username := verifiedUsername(c)
	item := req.item()
	if err := h.services.AddOrUpdateTodo(c.Request.Context(), username, item); err != nil {
		h.respondError(c, err, "todo_upsert_failed", "username", username, "todo_id", item.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSaved})
}
