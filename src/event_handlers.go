package main

import (
	"anc/src/config"
	"anc/src/db"
	"anc/src/models"
	"anc/src/types"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func eventRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	events := apiv1.Group("/events")
	events.
		GET("", func(ctx *gin.Context) {
			db := db.GetDb()
			var events []models.Event
			q := db.
				Model(&models.Event{}).
				Where(&models.Event{Status: types.EVENT_PUBLISHED}).
				Order("start_date asc")
			if et := ctx.Query("event_type"); et != "" {
				q = q.Where("event_type = ?", et)
			}
			if err := q.Find(&events).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve events"})
				return
			}
			now := time.Now()
			data := make([]map[string]any, 0, len(events))
			for i := range events {
				data = append(data, eventView(&events[i], now))
			}
			ctx.JSON(http.StatusOK, gin.H{"data": data, "count": len(data)})
		}).
		GET("/:slug", func(ctx *gin.Context) {
			var params struct {
				Slug string `uri:"slug" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var event models.Event
			if err := db.
				Model(&models.Event{}).
				Where(&models.Event{Slug: params.Slug, Status: types.EVENT_PUBLISHED}).
				First(&event).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
					return
				}
				ctx.Status(http.StatusBadRequest)
				return
			}
			go func(id uint) {
				if err := db.
					Model(&models.Event{}).
					Where("id = ?", id).
					Update("views", gorm.Expr("views + 1")).
					Error; err != nil {
					log.Printf("Error counting view for event [%d]: %s\n", id, err.Error())
				}
			}(event.ID)
			ctx.JSON(http.StatusOK, gin.H{"data": eventView(&event, time.Now())})
		})
	return apiv1
}

func eventView(e *models.Event, now time.Time) map[string]any {
	return map[string]any{
		"id":              e.ID,
		"title":           e.Title,
		"title_bangla":    e.TitleBangla,
		"slug":            e.Slug,
		"description":     e.Description,
		"event_type":      e.EventType,
		"category":        e.Category,
		"start_date":      e.StartDate,
		"end_date":        e.EndDate,
		"venue_name":      e.VenueName,
		"venue_address":   e.VenueAddress,
		"venue_city":      e.VenueCity,
		"cover_image":     e.CoverImage,
		"donation_target": e.DonationTarget,
		"status":          e.Status,
		"phase":           e.Phase(now),
		"views":           e.Views,
	}
}

func adminEventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			startDate, err := time.Parse(config.TIME_PARSE_FORMAT, body.StartDate)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
				return
			}
			event := models.Event{
				Title:          body.Title,
				TitleBangla:    body.TitleBangla,
				Description:    body.Description,
				EventType:      body.EventType,
				Category:       body.Category,
				StartDate:      startDate,
				VenueName:      body.VenueName,
				VenueAddress:   body.VenueAddress,
				VenueCity:      body.VenueCity,
				CoverImage:     body.CoverImage,
				DonationTarget: body.DonationTarget,
				Status:         types.EVENT_DRAFT,
				CreatedBy:      ctx.GetUint("id"),
			}
			if body.DonationTarget > 0 {
				event.HasDonationTarget = true
			}
			if body.EndDate != nil {
				endDate, err := time.Parse(config.TIME_PARSE_FORMAT, *body.EndDate)
				if err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
					return
				}
				event.EndDate = &endDate
			}
			if body.Publish {
				now := time.Now()
				event.Status = types.EVENT_PUBLISHED
				event.PublishedAt = &now
			}
			db := db.GetDb()
			if err := db.Create(&event).Error; err != nil {
				log.Printf("Error creating event: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not create event"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": event})
		}).
		POST("/events/:id/publish", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			now := time.Now()
			res := db.
				Model(&models.Event{}).
				Where("id = ?", params.ID).
				Where("status = ?", types.EVENT_DRAFT).
				Updates(&models.Event{Status: types.EVENT_PUBLISHED, PublishedAt: &now})
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No draft event with that id"})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/events/:id/unpublish", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			res := db.
				Model(&models.Event{}).
				Where("id = ?", params.ID).
				Where("status = ?", types.EVENT_PUBLISHED).
				Update("status", types.EVENT_DRAFT)
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No published event with that id"})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/events/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			res := db.
				Model(&models.Event{}).
				Where("id = ?", params.ID).
				Where("status <> ?", types.EVENT_COMPLETED).
				Update("status", types.EVENT_CANCELLED)
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
