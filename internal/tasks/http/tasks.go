package http

import (
	"net/http"

	"github.com/aussiebroadwan/tasks/internal/tasks/service"
	"github.com/aussiebroadwan/tasks/pkg/httpx"
	"github.com/aussiebroadwan/tasks/pkg/tasksdk"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleList godoc
//
//	@Summary		List tasks
//	@Description	The caller's tasks in creation order. Other users' tasks are never included.
//	@Tags			Tasks
//	@Produce		json
//	@Success		200	{object}	tasksdk.TaskListResponse
//	@Failure		401	{object}	tasksdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.CurrentIdentity(r.Context())

	tasks, err := h.TaskService.ListTasks(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := tasksdk.TaskListResponse{Tasks: make([]tasksdk.TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, toTaskResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create task
//	@Tags			Tasks
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			title		formData	string	true	"Task title"
//	@Param			description	formData	string	false	"Free text"
//	@Success		201			{object}	tasksdk.TaskResponse
//	@Failure		400			{object}	tasksdk.ErrorResponse	"validation_error"
//	@Failure		401			{object}	tasksdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.CurrentIdentity(r.Context())

	if err := r.ParseForm(); err != nil {
		badForm(w)
		return
	}
	form := parseTaskForm(r)
	if err := form.Validate(); err != nil {
		writeFormErrors(w, err)
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), userID, form.Title, form.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

// HandleComplete godoc
//
//	@Summary		Complete task
//	@Description	Mark one of the caller's tasks as done. Completing a done task succeeds.
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path		string	true	"Task ID"
//	@Success		200	{object}	tasksdk.TaskResponse
//	@Failure		403	{object}	tasksdk.ErrorResponse	"task belongs to another user"
//	@Failure		404	{object}	tasksdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id}/complete [post].
func (h *TasksHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.CurrentIdentity(r.Context())

	task, err := h.TaskService.CompleteTask(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleDelete godoc
//
//	@Summary		Delete task
//	@Tags			Tasks
//	@Param			id	path	string	true	"Task ID"
//	@Success		204
//	@Failure		403	{object}	tasksdk.ErrorResponse	"task belongs to another user"
//	@Failure		404	{object}	tasksdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.CurrentIdentity(r.Context())

	if err := h.TaskService.DeleteTask(r.Context(), r.PathValue("id"), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
