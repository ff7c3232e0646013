package endpoint

import (
	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/ariebrainware/dentara-clinic/repository"
	"github.com/ariebrainware/dentara-clinic/util"
	"github.com/ariebrainware/dentara-clinic/view"
	"github.com/gin-gonic/gin"
)

// ListTasks godoc
// @Summary      List tasks
// @Description  Sorted by due date, undated last
// @Tags         Task
// @Produce      json
// @Security     SessionToken
// @Param        q query string false "Search description and assignee"
// @Param        status query string false "Pending|Completed"
// @Param        priority query string false "High|Medium|Low"
// @Success      200 {object} util.APIResponse{data=object}
// @Router       /api/tasks [get]
func ListTasks(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	all, err := repos.Tasks.All(c.Request.Context())
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve tasks", Err: err})
		return
	}

	pl := view.NewPipeline[model.Task]()
	pl.Replace(all)
	pl.SetFilter("text", view.TaskMatchText(c.Query("q")))
	pl.SetFilter("status", view.TaskStatusIs(c.Query("status")))
	pl.SetFilter("priority", view.TaskPriorityIs(c.Query("priority")))
	pl.SortBy(view.ByDueDate)
	rows := pl.Visible()

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Tasks retrieved",
		Data: map[string]interface{}{"tasks": rows, "summary": view.SummarizeTasks(pl.All())},
	})
}

// GetTask godoc
// @Summary      Get a task
// @Tags         Task
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Task id"
// @Success      200 {object} util.APIResponse{data=model.Task}
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/tasks/{id} [get]
func GetTask(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	id := c.Param("id")
	t, err := repos.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve task", Err: err})
		return
	}
	if t == nil {
		respondNotFound(c, "task", id)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Task retrieved", Data: t})
}

// CreateTask godoc
// @Summary      Create a task
// @Description  New tasks start Pending with Medium priority unless one is given
// @Tags         Task
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body model.Task true "Task"
// @Success      201 {object} util.APIResponse "Task created"
// @Failure      400 {object} util.APIResponse "Missing or malformed fields"
// @Router       /api/tasks [post]
func CreateTask(c *gin.Context) {
	var req model.Task
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	id, err := repos.Tasks.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, "Failed to create task", err)
		return
	}
	util.CallCreated(c, util.APISuccessParams{Msg: "Task created", Data: map[string]interface{}{"id": id}})
}

// UpdateTask godoc
// @Summary      Update task fields
// @Tags         Task
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Task id"
// @Param        request body object true "Fields to change"
// @Success      200 {object} util.APIResponse "Task updated"
// @Failure      400 {object} util.APIResponse "Invalid patch"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/tasks/{id} [patch]
func UpdateTask(c *gin.Context) {
	var patch repository.Patch
	if !bindJSONOrRespond(c, &patch, "Invalid request payload") {
		return
	}
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Tasks.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondStoreError(c, "Failed to update task", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Task updated"})
}

// ToggleTask godoc
// @Summary      Toggle a task
// @Description  Flips Pending and Completed
// @Tags         Task
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Task id"
// @Success      200 {object} util.APIResponse "Task toggled"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /api/tasks/{id}/toggle [post]
func ToggleTask(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	st, err := repos.Tasks.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, "Failed to toggle task", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Task toggled", Data: map[string]interface{}{"status": st}})
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         Task
// @Produce      json
// @Security     SessionToken
// @Param        id path string true "Task id"
// @Success      200 {object} util.APIResponse "Task deleted"
// @Router       /api/tasks/{id} [delete]
func DeleteTask(c *gin.Context) {
	repos, ok := getReposOrRespond(c)
	if !ok {
		return
	}
	if err := repos.Tasks.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, "Failed to delete task", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Task deleted"})
}
