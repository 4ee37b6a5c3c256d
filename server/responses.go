package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/dekarrin/bandbook"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// result is the outcome of an endpoint. The zero value is not a valid result;
// use one of the constructors below.
type result struct {
	status      int
	isErr       bool
	internalMsg string
	resp        interface{}
	hdrs        [][2]string
}

func (r result) withHeader(name, val string) result {
	cp := r
	cp.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return cp
}

func (r result) writeResponse(w http.ResponseWriter) {
	// if this hasn't been properly created, panic
	if r.status == 0 {
		panic("result not populated")
	}

	respBytes, err := json.Marshal(r.resp)
	if err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.status)
	w.Write(respBytes)
}

// logResult writes a line for the request and its result. The client's
// ephemeral port is dropped.
func logResult(log bandbook.Logger, req *http.Request, r result) {
	remoteIP, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		remoteIP = req.RemoteAddr
	}

	if r.isErr {
		log.Errorf("%s %s %s: HTTP-%d %s", remoteIP, req.Method, req.URL.Path, r.status, r.internalMsg)
	} else {
		log.Infof("%s %s %s: HTTP-%d %s", remoteIP, req.Method, req.URL.Path, r.status, r.internalMsg)
	}
}

// If additional values are provided they are given to internalMsg as a format
// string.
func ok(respObj interface{}, internalMsg string, v ...interface{}) result {
	return result{
		status:      http.StatusOK,
		internalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

func errResult(status int, userMsg, internalMsg string, v ...interface{}) result {
	return result{
		isErr:       true,
		status:      status,
		internalMsg: fmt.Sprintf(internalMsg, v...),
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

func badRequest(userMsg, internalMsg string, v ...interface{}) result {
	return errResult(http.StatusBadRequest, userMsg, internalMsg, v...)
}

func notFound(internalMsg string, v ...interface{}) result {
	return errResult(http.StatusNotFound, "The requested resource was not found", internalMsg, v...)
}

func methodNotAllowed(req *http.Request) result {
	return errResult(http.StatusMethodNotAllowed, fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path), "method not allowed")
}

func internalServerError(internalMsg string, v ...interface{}) result {
	return errResult(http.StatusInternalServerError, "An internal server error occurred", internalMsg, v...)
}
