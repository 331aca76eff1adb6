package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/service"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// SubmitContact 受理联系表单提交，公开入口。
func (a *API) SubmitContact(c *gin.Context) {
	var req contactRequest
	if !bindJSON(c, &req, "invalid contact payload") {
		return
	}

	message, err := a.messages.CreateContact(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		if errors.Is(err, service.ErrMessageIncomplete) {
			respondError(c, http.StatusBadRequest, err.Error())
		} else {
			respondError(c, http.StatusInternalServerError, "failed to save message")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": message.ID})
}

// Subscribe 受理邮件订阅，公开入口。重复订阅不报错，幂等返回 200。
func (a *API) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if !bindJSON(c, &req, "invalid subscribe payload") {
		return
	}

	subscriber, err := a.messages.Subscribe(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySubscribed):
			c.JSON(http.StatusOK, gin.H{"subscribed": true})
		case errors.Is(err, service.ErrSubscriberBadEmail):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to subscribe")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subscribed": true, "id": subscriber.ID})
}

// ListMessages 返回全部留言，仅限管理员。
func (a *API) ListMessages(c *gin.Context) {
	if _, ok := a.authorize(c, auth.ActionRead, auth.MessageResource("")); !ok {
		return
	}

	messages, err := a.messages.ListContacts()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetMessage 返回单条留言，仅限管理员。
func (a *API) GetMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusNotFound, "message not found")
		return
	}

	if _, ok := a.authorize(c, auth.ActionRead, auth.MessageResource(formatID(id))); !ok {
		return
	}

	message, err := a.messages.GetContact(id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			respondError(c, http.StatusNotFound, "message not found")
		} else {
			respondError(c, http.StatusInternalServerError, "failed to load message")
		}
		return
	}

	c.JSON(http.StatusOK, message)
}

// ListSubscribers 返回订阅者列表，仅限管理员。
func (a *API) ListSubscribers(c *gin.Context) {
	if _, ok := a.authorize(c, auth.ActionRead, auth.MessageResource("")); !ok {
		return
	}

	subscribers, err := a.messages.ListSubscribers()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list subscribers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}
