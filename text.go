package main

// Web-only copy: navigation and page leads.

// NavLink is one entry of the main navigation.
type NavLink struct {
	Path  string
	Label string
	Key   string
}

var Nav = []NavLink{
	{"/", "Home", "home"},
	{"/about", "About", "about"},
	{"/services", "Services", "services"},
	{"/blog", "Blog", "blog"},
	{"/contact", "Contact", "contact"},
}

var (
	ServicesLead = "From intimate close-up moments to grand stage productions."
	ContactLead  = "Tell me about your event and I will get back to you within two business days."
	NotFoundLead = "This page has vanished. Even I can't make it reappear."
)
