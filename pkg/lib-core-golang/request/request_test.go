package request

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
	"gopkg.in/h2non/gock.v1"

	"github.com/evgeny-myasishchev/ledger.exchange/pkg/lib-core-golang/diag"
)

func TestDo(t *testing.T) {
	defer gock.Off()
	type tcFn func(*testing.T)
	tests := []func() (string, tcFn){
		func() (string, tcFn) {
			return "should send the request and return response", func(t *testing.T) {
				url := faker.URL()
				expectedBody := faker.Sentence()

				gock.New(url).
					Get("/").
					Reply(200).
					BodyString(expectedBody)

				resp := Do(context.TODO(), Get(url))
				if !assert.True(t, gock.IsDone(), "No request performed") {
					return
				}

				respVal, err := resp()
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, 200, respVal.StatusCode)

				actualBody, err := resp.ReadAll()
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, expectedBody, string(actualBody))
			}
		},
		func() (string, tcFn) {
			return "should post json and decode response", func(t *testing.T) {
				url := faker.URL()
				payload := map[string]interface{}{"key": faker.Word()}
				response := map[string]interface{}{"value": faker.Word()}
				requestID := faker.UUIDHyphenated()

				gock.New(url).
					Post("/v1/items").
					MatchHeader("content-type", "application/json").
					MatchHeader("x-request-id", requestID).
					JSON(payload).
					Reply(201).
					JSON(response)

				ctx := diag.ContextWithRequestID(context.Background(), requestID)
				var got map[string]interface{}
				err := Do(ctx, Post(url+"/v1/items", payload),
					withLogger(diag.CreateLogger()),
					WithTimeout(5*time.Second),
				).DecodeJSON(&got)
				if !assert.NoError(t, err) {
					return
				}
				assert.True(t, gock.IsDone(), "No request performed")
				assert.Equal(t, response, got)
			}
		},
		func() (string, tcFn) {
			return "should fail with http error if not 2xx", func(t *testing.T) {
				url := faker.URL()
				body := faker.Sentence()
				gock.New(url).
					Get("/").
					Reply(404).
					BodyString(body)

				_, err := Do(context.TODO(), Get(url)).ReadAll()
				if !assert.Error(t, err) {
					return
				}
				assert.Equal(t, HTTPError{
					StatusCode: http.StatusNotFound,
					Status:     http.StatusText(http.StatusNotFound),
					Body:       []byte(body),
				}, err)
			}
		},
		func() (string, tcFn) {
			return "should fail if request can not be created", func(t *testing.T) {
				_, err := Do(context.TODO(), Get("://bad-url")).ReadAll()
				assert.Error(t, err)
			}
		},
	}
	for _, tt := range tests {
		t.Run(tt())
	}
}
