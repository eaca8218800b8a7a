package content

// ProgramsQuery lists active programs for the registration page.
const ProgramsQuery = `*[_type == "program" && isActive == true] | order(priority desc, startDate asc) {
  _id,
  title,
  "slug": slug.current,
  description,
  startDate,
  endDate,
  location,
  category,
  capacity,
  registrationDeadline,
  "registrationOpen": coalesce(registrationOpen, true),
  "priority": coalesce(priority, 0)
}`

const thumbnail = `thumbnailImage {..., asset-> {_id, url, metadata {dimensions}}}`

// namedQueries are the public page queries served by GET /api/content/:name.
var namedQueries = map[string]string{
	"latestFellowshipSession": `*[_type == "fellowshipSession" && isLatest == true][0] {
  _id, title, description, youtubeUrl, youtubeId, ` + thumbnail + `, date
}`,
	"websiteAnnouncement": `*[_type == "websiteAnnouncement" && isActive == true] | order(_updatedAt desc)[0] {
  ...
}`,
	"announcements": `*[_type == "announcement" && isActive == true] | order(priority desc, date desc) {
  _id, title, content, date, priority
}`,
	"events": `*[_type == "event" && isUpcoming == true && date >= now()] | order(date asc) {
  _id, title, description, date, location, image
}`,
	"ministries": `*[_type == "ministry" && isActive == true] | order(priority desc, progress desc) {
  _id, title, description, fullDescription, image {..., asset-> {_id, url, metadata {dimensions}}},
  progress, progressDescription, status, dateStarted, dateCompleted, priority
}`,
	"sessionRecordings": `*[_type == "sessionRecording" && (isActive == true || !defined(isActive))] | order(sessionDate desc, priority desc) {
  _id, title, description, youtubeUrl, youtubeId, ` + thumbnail + `, sessionDate, duration, speaker, topic, priority
}`,
	"pastSermons": `*[_type == "pastSermon" && (isActive == true || !defined(isActive))] | order(date desc, priority desc) {
  _id, title, speaker, youtubeUrl, youtubeId, ` + thumbnail + `, date, priority
}`,
	"podcasts": `*[_type == "podcast" && (isActive == true || !defined(isActive))] | order(date desc, priority desc) {
  _id, title, description, youtubeUrl, youtubeId, ` + thumbnail + `, date, priority
}`,
	"footer": `*[_type == "footer"][0] {
  quickLinks, getConnected, ministries, copyright, socialMedia, contactInfo,
  charityNumber, affiliation, recognitionStatement
}`,
	"contactPage": `*[_type == "contactPage"][0] {getInTouchMessage, email, phone, socialMedia}`,
	"givingPage":  `*[_type == "givingPage"][0]`,
	"aboutPage":   `*[_type == "aboutPage"][0]`,
}

// Names returns the names accepted by the content endpoint.
func Names() []string {
	out := make([]string, 0, len(namedQueries))
	for name := range namedQueries {
		out = append(out, name)
	}
	return out
}
