package routes

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"

	"github.com/sphinxreisen3-cpu/Spinx-sub000/models"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/storage"
	"github.com/sphinxreisen3-cpu/Spinx-sub000/utils"
)

type exportJob struct {
	ID        string `json:"id"`
	Resource  string `json:"resource"`
	Status    string `json:"status"` // pending, processing, done, failed
	CreatedAt int64  `json:"created_at"`

	mu   sync.Mutex
	data []byte
}

func (j *exportJob) setStatus(status string) {
	j.mu.Lock()
	j.Status = status
	j.mu.Unlock()
}

var (
	exportJobs   = map[string]*exportJob{}
	exportJobsMu sync.Mutex
)

type ExportRequest struct {
	Resource string `json:"resource" validate:"required,oneof=bookings reviews"`
}

// POST /api/admin/export — kicks off an async CSV export.
func AdminCreateExport(ctx iris.Context) {
	var input ExportRequest
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	job := &exportJob{
		ID:        uuid.NewString(),
		Resource:  input.Resource,
		Status:    "pending",
		CreatedAt: time.Now().Unix(),
	}
	exportJobsMu.Lock()
	exportJobs[job.ID] = job
	exportJobsMu.Unlock()

	go runExport(job)

	ctx.StatusCode(iris.StatusAccepted)
	utils.JSONData(ctx, iris.Map{"id": job.ID, "status": job.Status})
}

func runExport(job *exportJob) {
	job.setStatus("processing")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch job.Resource {
	case "bookings":
		var bookings []models.Booking
		if err := storage.DB.Preload("Tour").Order("created_at").Find(&bookings).Error; err != nil {
			job.setStatus("failed")
			return
		}
		w.Write([]string{"id", "tour", "name", "email", "travel_date", "adults", "children", "infants", "total", "currency", "status", "created_at"})
		for _, b := range bookings {
			w.Write([]string{
				strconv.FormatUint(uint64(b.ID), 10),
				b.Tour.Title,
				b.Name,
				b.Email,
				b.TravelDate.Format("2006-01-02"),
				strconv.Itoa(b.Adults),
				strconv.Itoa(b.Children),
				strconv.Itoa(b.Infants),
				strconv.FormatFloat(b.TotalPrice, 'f', 2, 64),
				b.Currency,
				b.Status,
				b.CreatedAt.Format(time.RFC3339),
			})
		}
	case "reviews":
		var reviews []models.Review
		if err := storage.DB.Preload("Tour").Order("created_at").Find(&reviews).Error; err != nil {
			job.setStatus("failed")
			return
		}
		w.Write([]string{"id", "tour", "name", "email", "rating", "approved", "created_at"})
		for _, r := range reviews {
			w.Write([]string{
				strconv.FormatUint(uint64(r.ID), 10),
				r.Tour.Title,
				r.Name,
				r.Email,
				strconv.Itoa(r.Rating),
				strconv.FormatBool(r.IsApproved),
				r.CreatedAt.Format(time.RFC3339),
			})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		job.setStatus("failed")
		return
	}

	job.mu.Lock()
	job.data = buf.Bytes()
	job.Status = "done"
	job.mu.Unlock()
}

// GET /api/admin/export/:id — job status, or the CSV itself with ?download=1.
func AdminGetExport(ctx iris.Context) {
	id := ctx.Params().GetString("id")

	exportJobsMu.Lock()
	job, ok := exportJobs[id]
	exportJobsMu.Unlock()
	if !ok {
		utils.JSONError(ctx, iris.StatusNotFound, "export job not found")
		return
	}

	job.mu.Lock()
	status := job.Status
	data := job.data
	job.mu.Unlock()

	download, _ := strconv.ParseBool(ctx.URLParamDefault("download", "false"))
	if download && status == "done" {
		ctx.ContentType("text/csv")
		ctx.Header("Content-Disposition", "attachment; filename="+job.Resource+"-"+id+".csv")
		ctx.Write(data)
		return
	}

	utils.JSONData(ctx, iris.Map{"id": job.ID, "resource": job.Resource, "status": status})
}
