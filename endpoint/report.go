package endpoint

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/dentara-clinic/middleware"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/report"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/ariebrainware/dentara-clinic/view"
	"github.com/gin-gonic/gin"
)

// ExportNoShows godoc
// @Summary      Export the no-show list
// @Description  CSV of the no-shows of a date. With a report bucket configured the file is uploaded and its key returned; otherwise the CSV is the response body.
// @Tags         Report
// @Produce      text/csv
// @Produce      json
// @Security     SessionToken
// @Param        date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success      200 {string} string "CSV"
// @Success      201 {object} util.APIResponse "Uploaded"
// @Failure      400 {object} util.APIResponse "Malformed date"
// @Router       /api/reports/no-shows [get]
func ExportNoShows(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format(repository.DateLayout))
	if _, err := time.Parse(repository.DateLayout, date); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid date", Err: err})
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	appts, err := repos.Appointments.NoShowsOn(ctx, date)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve no-shows", Err: err})
		return
	}
	names, err := repos.Users.DoctorNames(ctx)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve doctors", Err: err})
		return
	}

	var buf bytes.Buffer
	if err := report.WriteNoShowCSV(&buf, appts, view.DoctorDirectory(names)); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to write report", Err: err})
		return
	}

	uploader := middleware.GetUploader(c)
	if uploader == nil {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=no-shows-%s.csv", date))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}
	key, err := uploader.UploadNoShows(ctx, date, buf.Bytes())
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to upload report", Err: err})
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Report uploaded", Data: map[string]interface{}{"key": key, "rows": len(appts)}})
}
