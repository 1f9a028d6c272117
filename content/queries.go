package content

// GROQ projections for the two document kinds the site reads. The field
// lists match the store's post and panchang schemas; queries are read-only.

const postsQuery = `*[_type == "post"] | order(publishedAt desc) {
  _id, title, slug, excerpt, category, image, externalImageUrl, publishedAt, author
}`

const postBySlugQuery = `*[_type == "post" && slug.current == $slug][0] {
  _id, title, slug, excerpt, body, category, image, externalImageUrl, publishedAt, author
}`

const postsByCategoryQuery = `*[_type == "post" && category == $category] | order(publishedAt desc) {
  _id, title, slug, excerpt, category, image, externalImageUrl, publishedAt, author
}`

const recentPostsQuery = `*[_type == "post"] | order(publishedAt desc)[0..4] {
  _id, title, slug, publishedAt, category
}`

const postSlugsQuery = `*[_type == "post" && defined(slug.current)].slug.current`

const panchangByDateQuery = `*[_type == "panchang" && date == $date][0] {
  _id, date, tithi, vara, nakshatra, yoga, karana, sunrise, sunset, specialEvent
}`

const panchangLatestQuery = `*[_type == "panchang"] | order(date desc)[0] {
  _id, date, tithi, vara, nakshatra, yoga, karana, sunrise, sunset, specialEvent
}`
