// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-collab-forms/internal/logger"
	"github.com/MKhiriev/go-collab-forms/internal/service"
	"github.com/MKhiriev/go-collab-forms/internal/store"
	"github.com/MKhiriev/go-collab-forms/internal/utils"
	"github.com/MKhiriev/go-collab-forms/models"
)

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageLogin, "", models.Credentials{})
}

// login signs the user in and hands the session token to the browser as a
// cookie. A failed attempt re-renders the form with the login kept.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	creds, err := credentialsFromForm(r)
	if err != nil {
		log.Err(err).Msg("unreadable login form")
		h.render(w, r, http.StatusBadRequest, pageLogin, "Could not read the form.", models.Credentials{})
		return
	}

	token, err := h.services.AuthService.SignIn(r.Context(), creds)
	if err != nil {
		log.Info().Err(err).Str("login", creds.Login).Msg("sign in failed")
		h.render(w, r, statusFromError(err), pageLogin, signInMessage(err), models.Credentials{Login: creds.Login})
		return
	}

	h.setSessionCookie(w, token)
	log.Info().Str("login", creds.Login).Msg("user signed in")
	utils.SeeOther(w, r, "/dashboard")
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageRegister, "", models.Credentials{})
}

// register creates the account and signs it in straight away.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	creds, err := credentialsFromForm(r)
	if err != nil {
		log.Err(err).Msg("unreadable registration form")
		h.render(w, r, http.StatusBadRequest, pageRegister, "Could not read the form.", models.Credentials{})
		return
	}

	if _, err = h.services.AuthService.Register(r.Context(), creds); err != nil {
		log.Info().Err(err).Str("login", creds.Login).Msg("registration failed")
		h.render(w, r, statusFromError(err), pageRegister, registerMessage(err), models.Credentials{Login: creds.Login})
		return
	}

	token, err := h.services.AuthService.SignIn(r.Context(), creds)
	if err != nil {
		log.Err(err).Str("login", creds.Login).Msg("sign in after registration failed")
		utils.SeeOther(w, r, "/login")
		return
	}

	h.setSessionCookie(w, token)
	log.Info().Str("login", creds.Login).Msg("user registered")
	utils.SeeOther(w, r, "/dashboard")
}

// logout revokes the session when the backend supports it. The cookie is
// cleared either way.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token, err := sessionTokenFromRequest(r); err == nil {
		if err = h.services.AuthService.SignOut(r.Context(), token); err != nil {
			logger.FromRequest(r).Err(err).Msg("sign out failed")
		}
	}

	h.clearSessionCookie(w)
	utils.SeeOther(w, r, "/login")
}

func credentialsFromForm(r *http.Request) (models.Credentials, error) {
	if err := r.ParseForm(); err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{
		Login:    r.PostForm.Get("login"),
		Password: r.PostForm.Get("password"),
	}, nil
}

func signInMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid login or password."
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Login and password are required."
	}
	return "Sign in failed, please try again."
}

func registerMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return "That login is already taken."
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Login and password are required. Passwords are limited to 72 bytes."
	}
	return "Registration failed, please try again."
}
