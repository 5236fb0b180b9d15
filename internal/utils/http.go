package utils

import (
	"net/http"
)

// SeeOther redirects to location with 303, so a POST is followed by a GET.
func SeeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
