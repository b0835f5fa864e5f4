package gridapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gridweave/gridweave-api/api/identity"
	"github.com/gridweave/gridweave-api/service/i"
)

// GridController manages grid generation and retrieval operations.
type GridController struct {
	grids i.GridManager
	queue i.BatchQueuer
}

// NewGridController initializes a GridController.
func NewGridController(grids i.GridManager, queue i.BatchQueuer) (*GridController, error) {
	return &GridController{
		grids: grids,
		queue: queue,
	}, nil
}

// RegisterPublic registers public routes.
func (gc *GridController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (gc *GridController) RegisterProtected(route *gin.RouterGroup) {
	grids := route.Group("/grids")
	{
		grids.POST("/", gc.generate)
		grids.POST("/batch", gc.batch)
		grids.GET("/", gc.listOwn)
		grids.GET("/:ID", gc.gridInfo)
		grids.GET("/:ID/render", gc.render)
	}
}

// generate handles synchronous grid generation requests.
func (gc *GridController) generate(ctx *gin.Context) {
	ownerID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request GenerateRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := gc.grids.Generate(ctx, ownerID, request.Params())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := NewGridResponse(record)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding grid"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// batch queues several generation jobs for asynchronous processing.
func (gc *GridController) batch(ctx *gin.Context) {
	ownerID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request BatchRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobIDs := make([]string, 0, request.Count)
	for n := 0; n < request.Count; n++ {
		jobID, err := gc.queue.Enqueue(ctx, ownerID, request.Params())
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		jobIDs = append(jobIDs, jobID.String())
	}

	ctx.JSON(http.StatusAccepted, &BatchResponse{
		JobIDs:  jobIDs,
		Pending: gc.queue.Pending(ctx),
	})
}

// listOwn returns every grid generated for the authenticated user.
func (gc *GridController) listOwn(ctx *gin.Context) {
	ownerID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	records, err := gc.grids.ByOwner(ctx, ownerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while listing grids"})
		return
	}

	responses := make([]*GridResponse, 0, len(records))
	for _, record := range records {
		response, err := NewGridResponse(record)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding grid"})
			return
		}
		responses = append(responses, response)
	}

	ctx.JSON(http.StatusOK, responses)
}

// gridInfo retrieves a single stored grid.
func (gc *GridController) gridInfo(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	record, err := gc.grids.ByID(ctx, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no grid"})
		return
	}

	response, err := NewGridResponse(record)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding grid"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// render serves the textual form of a stored grid.
func (gc *GridController) render(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	render, err := gc.grids.Render(ctx, id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no grid"})
		return
	}

	ctx.String(http.StatusOK, render)
}
